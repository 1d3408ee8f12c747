// Package quote supplies the motivational messages shown after a focus
// session.
package quote

import (
	"math/rand/v2"
	"sync"

	"github.com/alexanderramin/pomo/internal/domain"
)

// Default is the built-in quote list.
var Default = []domain.Quote{
	{Text: "Productivity is being able to do things that you were never able to do before.", Author: "Franz Kafka"},
	{Text: "The way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
	{Text: "The key is not to prioritize what's on your schedule, but to schedule your priorities.", Author: "Stephen Covey"},
	{Text: "You don't have to see the whole staircase, just take the first step.", Author: "Martin Luther King Jr."},
	{Text: "Concentrate all your thoughts upon the work at hand. The sun's rays do not burn until brought to a focus.", Author: "Alexander Graham Bell"},
	{Text: "Small deeds done are better than great deeds planned.", Author: "Peter Marshall"},
	{Text: "The secret of getting ahead is getting started.", Author: "Mark Twain"},
}

// Picker returns quotes uniformly at random.
type Picker struct {
	mu     sync.Mutex
	quotes []domain.Quote
	rng    *rand.Rand
}

// NewPicker creates a Picker over quotes, or over Default when quotes is
// empty. seed makes the sequence reproducible.
func NewPicker(quotes []domain.Quote, seed uint64) *Picker {
	if len(quotes) == 0 {
		quotes = Default
	}
	return &Picker{
		quotes: quotes,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next implements engine.QuoteSource.
func (p *Picker) Next() domain.Quote {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quotes[p.rng.IntN(len(p.quotes))]
}
