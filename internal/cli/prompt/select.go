// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/wlog/internal/errors"
)

// Sentinel errors for selection.
var (
	ErrNoItems            = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Item is one choice offered to the user.
type Item struct {
	// Name is shown in the list and returned to callers.
	Name string

	// Detail is shown in parentheses after the name.
	Detail string

	// Preview is shown in the fuzzy finder's preview pane.
	Preview string
}

func (it Item) label() string {
	if it.Detail == "" {
		return it.Name
	}
	return fmt.Sprintf("%s (%s)", it.Name, it.Detail)
}

// Selector handles interactive selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Select prompts the user to choose one item and returns its index.
//
// Returns:
//   - ErrNoItems if the list is empty
//   - 0 if only one item exists (auto-selects without prompting)
//   - the selected index; empty input picks the first item
//   - ErrInvalidSelection if the selection is not a number in range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(query string, items []Item) (int, error) {
	if len(items) == 0 {
		return -1, ErrNoItems
	}
	if len(items) == 1 {
		return 0, nil
	}

	s.list(query, items)
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.readLine()
	if err != nil {
		return -1, err
	}
	if input == "" {
		return 0, nil
	}
	return parseIndex(input, len(items))
}

// SelectMany prompts the user to choose any number of items and returns
// their indexes in ascending order. Input is a comma or space separated
// list of numbers, or "all". Empty input cancels.
func (s *Selector) SelectMany(query string, items []Item) ([]int, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	s.list(query, items)
	fmt.Fprintf(s.writer, "Select (e.g. 1,3 or all): ")

	input, err := s.readLine()
	if err != nil {
		return nil, err
	}
	if input == "" {
		return nil, ErrSelectionCancelled
	}
	if strings.EqualFold(input, "all") {
		all := make([]int, len(items))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' })
	var picked []int
	for _, f := range fields {
		idx, err := parseIndex(f, len(items))
		if err != nil {
			return nil, err
		}
		if !slices.Contains(picked, idx) {
			picked = append(picked, idx)
		}
	}
	slices.Sort(picked)
	return picked, nil
}

// FuzzySelectMany opens a full-screen fuzzy finder over items with a
// preview pane and returns the chosen indexes in ascending order. Tab marks
// several entries. It needs a terminal on stdin.
func FuzzySelectMany(header string, items []Item) ([]int, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	idx, err := fuzzyfinder.FindMulti(
		items,
		func(i int) string { return items[i].label() },
		fuzzyfinder.WithHeader(header),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return items[i].Preview
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "fuzzy selection failed")
	}

	slices.Sort(idx)
	return idx, nil
}

func (s *Selector) list(query string, items []Item) {
	fmt.Fprintf(s.writer, "%s:\n", query)
	for i, it := range items {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, it.label())
	}
}

func (s *Selector) readLine() (string, error) {
	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts
		if errors.Is(err, io.EOF) && strings.TrimSpace(input) != "" {
			return strings.TrimSpace(input), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading selection")
	}
	return strings.TrimSpace(input), nil
}

// parseIndex converts a 1-based selection to a 0-based index.
func parseIndex(input string, n int) (int, error) {
	selection, err := strconv.Atoi(input)
	if err != nil {
		return -1, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > n {
		return -1, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, n)
	}
	return selection - 1, nil
}
