package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/digest"
)

type crackOptions struct {
	password string
	hash     string
	alg      string
	max      int
	charset  string
	symbols  string
	workers  int
	strategy string
}

func newCrackCmd(root *rootOptions) *cobra.Command {
	opts := &crackOptions{}
	cmd := &cobra.Command{
		Use:   "crack",
		Short: "Search for the plaintext of a digest",
		Long: "Search for the plaintext of a digest given with --hash, or of the digest of\n" +
			"--password. With neither, the password is read from stdin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			req := cfg.Search.Request()
			opts.apply(cmd, &req)
			if req.Password == "" && req.Hash == "" {
				if req.Password, err = readPassword(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			spec, err := req.Resolve()
			if err != nil {
				return err
			}
			coordinator := hashcrack.NewCoordinator(cfg.Search.CoordinatorConfig())
			res, err := coordinator.Search(cmd.Context(), spec)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.password, "password", "p", "", "plaintext whose digest is searched for")
	f.StringVarP(&opts.hash, "hash", "t", "", "hex digest to reverse")
	f.StringVarP(&opts.alg, "alg", "a", "", "digest algorithm: "+strings.Join(digest.List(), ", "))
	f.IntVarP(&opts.max, "max", "m", 0, "maximum candidate length")
	f.StringVarP(&opts.charset, "charset", "c", "", "alphabet preset: lower, lower_digits, all, special")
	f.StringVar(&opts.symbols, "symbols", "", "explicit alphabet, overrides --charset")
	f.IntVarP(&opts.workers, "workers", "w", 0, "parallel workers, 0 uses every CPU")
	f.StringVar(&opts.strategy, "strategy", "", "partition strategy: prefix or index")
	cmd.MarkFlagsMutuallyExclusive("password", "hash")
	return cmd
}

// apply overrides configured defaults with the flags given on the command line.
func (o *crackOptions) apply(cmd *cobra.Command, req *hashcrack.Request) {
	f := cmd.Flags()
	req.Password = o.password
	req.Hash = o.hash
	if f.Changed("alg") {
		req.Algorithm = o.alg
	}
	if f.Changed("max") {
		req.MaxLength = o.max
	}
	if f.Changed("charset") {
		req.Charset = o.charset
		req.Symbols = ""
	}
	if f.Changed("symbols") {
		req.Symbols = o.symbols
	}
	if f.Changed("workers") {
		req.Workers = o.workers
	}
	if f.Changed("strategy") {
		req.Strategy = o.strategy
	}
}

func readPassword(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		if _, err := fmt.Fprint(out, "Password: "); err != nil {
			return "", err
		}
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "read password")
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", hashcrack.ErrEmptyTarget
	}
	return line, nil
}

func printResult(w io.Writer, res *hashcrack.SearchResult) error {
	var b strings.Builder
	if res.Found {
		fmt.Fprintf(&b, "Found: %s\n", res.Candidate)
	} else {
		b.WriteString("Not found\n")
	}
	if res.Exact {
		fmt.Fprintf(&b, "Tries: %d\n", res.Attempts)
	} else {
		fmt.Fprintf(&b, "Tries (approx): %d\n", res.Attempts)
	}
	fmt.Fprintf(&b, "Time: %.2fs\n", res.Elapsed.Seconds())
	if res.Incomplete {
		b.WriteString("Warning: search incomplete\n")
		for _, warning := range res.Warnings {
			fmt.Fprintf(&b, "  %s\n", warning)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
