package blueprint

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/groundwork/pkg/domain"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxDocumentSize bounds a blueprint document.
	MaxDocumentSize = 1 << 20
	// MaxNameLength is the longest title or name accepted, in runes.
	// It matches the Notion limit for a rich text item.
	MaxNameLength = 2000
)

var (
	ErrTooLarge    = errors.New("blueprint exceeds maximum allowed size")
	ErrInvalidUTF8 = errors.New("name contains invalid UTF-8 sequences")
)

// sanitizeName trims a title or name, strips control characters and
// normalizes it to NFC, so that nothing written to the services or to the log
// can carry terminal escapes and space names compare equal however they were typed.
// Names are single line: newlines and tabs are removed as well.
func sanitizeName(name string) (string, error) {
	if !utf8.ValidString(name) {
		return "", ErrInvalidUTF8
	}
	name = norm.NFC.String(name)
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return "", fmt.Errorf("name is %d characters long, limit is %d", n, MaxNameLength)
	}

	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(name, unicode.IsControl) < 0 {
		return strings.TrimSpace(name), nil
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// sanitize cleans every name in bp in place.
func sanitize(bp *domain.Blueprint) error {
	if err := sanitizePage(&bp.Document.Root, "document.root"); err != nil {
		return err
	}

	var err error
	if bp.Tasks.Space.Name, err = sanitizeName(bp.Tasks.Space.Name); err != nil {
		return fmt.Errorf("%w: tasks.space.name: %w", ErrInvalid, err)
	}
	for i := range bp.Tasks.Lists {
		if bp.Tasks.Lists[i].Name, err = sanitizeName(bp.Tasks.Lists[i].Name); err != nil {
			return fmt.Errorf("%w: tasks.lists[%d]: %w", ErrInvalid, i, err)
		}
	}
	return nil
}

func sanitizePage(p *domain.PageSpec, path string) error {
	var err error
	if p.Title, err = sanitizeName(p.Title); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	for i := range p.Children {
		if err := sanitizePage(&p.Children[i], fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}
