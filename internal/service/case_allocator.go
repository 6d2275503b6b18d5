package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/DanielMat97/BackendExtorApp/pkg/e"
)

const (
	CaseNumberPrefix = "EXT"
	maxCaseSequence  = 999999
)

var caseNumberShape = regexp.MustCompile(`^EXT-(\d{4})-(\d{6})$`)

type SequenceStore interface {
	MaxSequenceForPrefix(ctx context.Context, prefix string) (int, bool, error)
}

// CaseAllocator proposes the next case number of a year partition. It reads
// the current maximum and adds one without locking; two callers may get the
// same number, and the store's unique constraint decides which one wins.
type CaseAllocator struct {
	store SequenceStore
}

func NewCaseAllocator(store SequenceStore) *CaseAllocator {
	return &CaseAllocator{store: store}
}

// YearPrefix is EXT-<year>, the partition key for now.
func YearPrefix(now time.Time) string {
	return fmt.Sprintf("%s-%d", CaseNumberPrefix, now.Year())
}

func FormatCaseNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%06d", CaseNumberPrefix, year, seq)
}

func ParseCaseNumber(caseNumber string) (year, seq int, ok bool) {
	m := caseNumberShape.FindStringSubmatch(caseNumber)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	seq, _ = strconv.Atoi(m[2])
	return year, seq, seq > 0
}

func (a *CaseAllocator) Allocate(ctx context.Context, now time.Time) (string, error) {
	const op = "service.CaseAllocator.Allocate"

	prefix := YearPrefix(now)
	last, found, err := a.store.MaxSequenceForPrefix(ctx, prefix)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	next := 1
	if found {
		next = last + 1
	}
	if next > maxCaseSequence {
		return "", fmt.Errorf("%s: %s: %w", op, prefix, e.ErrSequenceExhausted)
	}

	return FormatCaseNumber(now.Year(), next), nil
}
