package dispatcher

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/ykhdr/hash-bruteforce/config"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
	"github.com/ykhdr/hash-bruteforce/internal/messages/request"
	"github.com/ykhdr/hash-bruteforce/internal/store/requeststore"
	"golang.org/x/sync/errgroup"
)

var (
	ErrorQueueFull = errors.New("request queue is full")
)

// Searcher runs one resolved search.
type Searcher interface {
	Search(ctx context.Context, spec *hashcrack.SearchSpec) (*hashcrack.SearchResult, error)
}

// Dispatcher queues submitted requests and runs them on the coordinator,
// Concurrency searches at a time.
type Dispatcher struct {
	l               zerolog.Logger
	requestC        chan *request.CrackRequest
	dispatchTimeout time.Duration
	requestTimeout  time.Duration
	concurrency     int
	defaults        *config.SearchConfig
	searcher        Searcher
	requestStore    requeststore.RequestStore
}

func NewDispatcher(
	cfg *config.ServerConfig,
	defaults *config.SearchConfig,
	l zerolog.Logger,
	searcher Searcher,
	requestStore requeststore.RequestStore,
) *Dispatcher {
	return &Dispatcher{
		requestC:        make(chan *request.CrackRequest, cfg.RequestQueueSize),
		dispatchTimeout: cfg.DispatchTimeout,
		requestTimeout:  cfg.RequestTimeout,
		concurrency:     max(cfg.Concurrency, 1),
		defaults:        defaults,
		searcher:        searcher,
		requestStore:    requestStore,
		l: l.With().
			Str("domain", "dispatcher").
			Logger(),
	}
}

func (s *Dispatcher) Start(ctx context.Context) error {
	s.l.Info().Int("concurrency", s.concurrency).Msg("Dispatcher is running")
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < s.concurrency; i++ {
		g.Go(func() error {
			for {
				select {
				case req := <-s.requestC:
					s.handleRequest(gCtx, req)
				case <-gCtx.Done():
					return gCtx.Err()
				}
			}
		})
	}
	return g.Wait()
}

// DispatchRequest resolves the request, records it and queues it.
// Configuration errors are returned as *hashcrack.ConfigError and nothing is
// stored for them.
func (s *Dispatcher) DispatchRequest(apiReq *hashcrack.Request) (request.Id, error) {
	filled := *apiReq
	s.defaults.FillDefaults(&filled)
	spec, err := filled.Resolve()
	if err != nil {
		return "", err
	}
	reqId := request.Id(uuid.NewString())
	req := &request.CrackRequest{
		ID:        reqId,
		Spec:      spec,
		CreatedAt: time.Now(),
	}
	stored := redact(filled)
	stored.Hash = hex.EncodeToString(spec.Target)
	s.requestStore.Save(&request.Info{
		ID:        reqId,
		Status:    request.StatusNew,
		Request:   stored,
		CreatedAt: req.CreatedAt,
	})
	select {
	case s.requestC <- req:
		return reqId, nil
	case <-time.After(s.dispatchTimeout):
		_ = s.requestStore.Delete(reqId)
		return "", ErrorQueueFull
	}
}

func (s *Dispatcher) handleRequest(ctx context.Context, req *request.CrackRequest) {
	if req == nil {
		return
	}
	l := s.l.With().Str("request-id", string(req.ID)).Logger()
	if err := s.requestStore.UpdateStatus(req.ID, request.StatusInProgress); err != nil {
		l.Warn().Err(err).Msg("Request vanished before dispatch")
		return
	}

	searchCtx := ctx
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}
	res, searchErr := s.searcher.Search(searchCtx, req.Spec)
	info, err := s.requestStore.Get(req.ID)
	if err != nil {
		l.Warn().Err(err).Msg("Request vanished during search")
		return
	}
	if searchErr != nil {
		l.Warn().Err(searchErr).Msg("Search failed")
		info.Fail(searchErr)
	} else {
		info.Complete(res)
	}
	s.requestStore.Save(info)
	l.Debug().Str("status", string(info.Status)).Msg("Request finished")
}

// redact drops the plaintext so it is never served back by the status API.
func redact(req hashcrack.Request) hashcrack.Request {
	req.Password = ""
	return req
}
