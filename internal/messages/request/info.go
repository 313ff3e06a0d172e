package request

import (
	"time"

	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
)

type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReady      Status = "READY"
	StatusNotFound   Status = "NOT_FOUND"
	StatusPartial    Status = "PARTIAL"
	StatusError      Status = "ERROR"
)

func (s Status) Final() bool {
	switch s {
	case StatusReady, StatusNotFound, StatusPartial, StatusError:
		return true
	default:
		return false
	}
}

type Id string

type CrackRequest struct {
	ID        Id
	Spec      *hashcrack.SearchSpec
	CreatedAt time.Time
}

type Info struct {
	ID          Id
	Status      Status
	Request     hashcrack.Request
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Result      *hashcrack.SearchResult
	ErrorReason string
}

func (r *Info) Copy() *Info {
	c := *r
	if r.Result != nil {
		res := *r.Result
		res.Warnings = append([]string(nil), r.Result.Warnings...)
		c.Result = &res
	}
	return &c
}

// Complete records a finished search and derives the final status.
func (r *Info) Complete(res *hashcrack.SearchResult) {
	r.Result = res
	switch {
	case res.Found:
		r.Status = StatusReady
	case res.Incomplete:
		r.Status = StatusPartial
	default:
		r.Status = StatusNotFound
	}
}

func (r *Info) Fail(err error) {
	r.Status = StatusError
	r.ErrorReason = err.Error()
}
