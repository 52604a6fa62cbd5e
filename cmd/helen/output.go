package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

func collectForCLI[V any](seq iter.Seq2[V, error], marshal func(V) ([]byte, error)) ([][]byte, error) {
	var (
		results [][]byte
		iterErr error
	)

	seq(func(value V, err error) bool {
		if err != nil {
			iterErr = err
			return false
		}
		data, err := marshal(value)
		if err != nil {
			iterErr = err
			return false
		}
		results = append(results, data)
		return true
	})

	if iterErr != nil {
		return nil, iterErr
	}
	return results, nil
}

func printJSONArray(w io.Writer, entries [][]byte) error {
	if _, err := fmt.Fprintln(w, "["); err != nil {
		return err
	}
	for i, entry := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, string(entry)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "]")
	return err
}

const defaultInteractiveBatch = 10

// printJSONArrayInteractive streams entries and pauses after every batch of entries,
// reading the answer from in. A batch below 1 uses the default. Typing q stops paging;
// the array is still closed.
func printJSONArrayInteractive[V any](w, prompt io.Writer, in io.Reader, batch int, seq iter.Seq2[V, error], marshal func(V) ([]byte, error)) error {
	if batch < 1 {
		batch = defaultInteractiveBatch
	}
	if _, err := fmt.Fprintln(w, "["); err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	var (
		printedAny bool
		processed  int
		iterErr    error
	)

	seq(func(value V, err error) bool {
		if err != nil {
			iterErr = err
			return false
		}

		data, err := marshal(value)
		if err != nil {
			iterErr = err
			return false
		}

		if printedAny {
			if _, err := fmt.Fprintln(w, ","); err != nil {
				iterErr = err
				return false
			}
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			iterErr = err
			return false
		}

		printedAny = true
		processed++

		if processed%batch == 0 {
			if _, err := fmt.Fprint(prompt, "Press Enter to continue, or type 'q' to quit: "); err != nil {
				iterErr = err
				return false
			}

			input, err := reader.ReadString('\n')
			if err != nil {
				if errors.Is(err, io.EOF) {
					return true
				}
				iterErr = err
				return false
			}
			if strings.EqualFold(strings.TrimSpace(input), "q") {
				return false
			}
		}
		return true
	})

	if _, err := fmt.Fprintln(w, "]"); err != nil && iterErr == nil {
		iterErr = err
	}
	return iterErr
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func indentRaw(raw json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func take[V any](seq iter.Seq2[V, error], n int) iter.Seq2[V, error] {
	if n <= 0 {
		return seq
	}
	return func(yield func(V, error) bool) {
		count := 0
		for v, err := range seq {
			if !yield(v, err) || err != nil {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
