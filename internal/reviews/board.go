package reviews

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
)

const (
	MaxDisplayed  = 9
	DefaultRating = 5
	MinRating     = 1
	MaxRating     = 5
	dateLayout    = "2006-01-02"
)

var ErrInvalidReview = errors.New("invalid review")

// Form is a review as typed by the shopper; Rating is raw input
type Form struct {
	Author string `json:"author" validate:"required"`
	Rating string `json:"rating"`
	Text   string `json:"text" validate:"required"`
}

// Board holds the reviews of the current session ahead of the catalog's seed reviews.
// Session reviews are never persisted.
type Board struct {
	mu       sync.RWMutex
	session  []domain.Review
	seed     []domain.Review
	validate *validator.Validate
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Board)

// WithClock overrides the clock used to date new reviews
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// NewBoard starts a session. initial reviews lead the session list; seed reviews follow it.
func NewBoard(initial, seed []domain.Review, log *zap.Logger, opts ...Option) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Board{
		session:  append([]domain.Review(nil), initial...),
		seed:     append([]domain.Review(nil), seed...),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Submit validates the form and prepends the review to the session list
func (b *Board) Submit(form Form) (domain.Review, error) {
	form.Author = strings.TrimSpace(form.Author)
	form.Text = strings.TrimSpace(form.Text)
	if err := b.validate.Struct(form); err != nil {
		return domain.Review{}, fmt.Errorf("%w: author and text are required", ErrInvalidReview)
	}

	r := domain.Review{
		Author: form.Author,
		Rating: ParseRating(form.Rating),
		Text:   form.Text,
		Date:   b.now().Format(dateLayout),
	}

	b.mu.Lock()
	b.session = append([]domain.Review{r}, b.session...)
	b.mu.Unlock()

	b.log.Info("review submitted", zap.String("author", r.Author), zap.Int("rating", r.Rating))
	return r, nil
}

// List is the display list: session reviews, then seed reviews, at most MaxDisplayed entries
func (b *Board) List() []domain.Review {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Review, 0, min(MaxDisplayed, len(b.session)+len(b.seed)))
	for _, src := range [][]domain.Review{b.session, b.seed} {
		for _, r := range src {
			if len(out) == MaxDisplayed {
				return out
			}
			out = append(out, r)
		}
	}
	return out
}

// ParseRating coerces raw input to a rating. Unparsable input yields DefaultRating,
// numbers are rounded and clamped to MinRating..MaxRating.
func ParseRating(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultRating
	}
	return min(max(int(math.Round(f)), MinRating), MaxRating)
}

// StatusFor maps a submission outcome to its user-facing status
func StatusFor(err error) domain.Status {
	if err != nil {
		return domain.ErrorStatus("Заполните имя и отзыв")
	}
	return domain.SuccessStatus("Отзыв отправлен на модерацию.")
}
