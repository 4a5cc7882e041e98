package ticket

import "fmt"

// Bucket is a named status partition used for dashboard counts and list
// filtering. open/closed split every status between them; in_progress and
// waiting are finer slices of open.
type Bucket string

const (
	BucketOpen       Bucket = "open"
	BucketInProgress Bucket = "in_progress"
	BucketWaiting    Bucket = "waiting"
	BucketClosed     Bucket = "closed"
	BucketAll        Bucket = "all"
)

func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketOpen, BucketInProgress, BucketWaiting, BucketClosed, BucketAll:
		return Bucket(s), nil
	case "":
		return BucketAll, nil
	}
	return "", fmt.Errorf("unknown bucket %q", s)
}

// Matches reports whether a status falls into the bucket. Driven purely by
// status; a ticket is closed exactly when Concluído or Cancelado.
func (b Bucket) Matches(s Status) bool {
	switch b {
	case BucketOpen:
		return s != StatusConcluido && s != StatusCancelado
	case BucketInProgress:
		return s == StatusEmAtendimento || s == StatusAtendimentoAgendado
	case BucketWaiting:
		return s == StatusAguardandoCliente || s == StatusElaborandoOrcamento
	case BucketClosed:
		return s == StatusConcluido || s == StatusCancelado
	case BucketAll:
		return true
	}
	return false
}

// Filter returns the tickets whose status falls into the bucket. Derived
// from scratch on every call; there is no incremental bookkeeping to drift.
func Filter(tickets []*Ticket, b Bucket) []*Ticket {
	if b == BucketAll {
		return tickets
	}
	filtered := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		if b.Matches(t.Status) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Counts returns the per-bucket totals for the dashboard.
func Counts(tickets []*Ticket) map[Bucket]int {
	counts := map[Bucket]int{
		BucketOpen:       0,
		BucketInProgress: 0,
		BucketWaiting:    0,
		BucketClosed:     0,
		BucketAll:        len(tickets),
	}
	for _, t := range tickets {
		for _, b := range []Bucket{BucketOpen, BucketInProgress, BucketWaiting, BucketClosed} {
			if b.Matches(t.Status) {
				counts[b]++
			}
		}
	}
	return counts
}
