// Package tokenizer estimates prompt sizes for request logs.
package tokenizer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/mandalnilabja/promptrelay/internal/types"
)

// Tokenizer counts tokens for relay requests.
type Tokenizer interface {
	// CountTokens counts tokens in a text string for a given model.
	CountTokens(text string, model string) (int, error)

	// CountRequest counts prompt plus system-instruction tokens for a request.
	CountRequest(req *types.RelayRequest, model string) (int, error)
}

// Encoding names used by tiktoken.
const (
	EncodingCL100kBase = "cl100k_base"
	EncodingO200kBase  = "o200k_base"
)

// modelEncoding pairs a prefix with its encoding.
type modelEncoding struct {
	prefix   string
	encoding string
}

// modelEncodings lists model prefixes and their encodings.
// Gemini has no public BPE; o200k_base is the closer approximation for
// its larger vocabulary. Longer prefixes come first.
var modelEncodings = []modelEncoding{
	{"gemini-1.0", EncodingCL100kBase},
	{"gemini", EncodingO200kBase},
	{"gemma", EncodingO200kBase},
}

// loadRetryInterval is how long a failed encoding load is remembered.
// tiktoken fetches BPE files over the network on first use, so a failure
// would otherwise repeat on every request.
const loadRetryInterval = time.Minute

// TiktokenTokenizer implements Tokenizer using tiktoken-go.
type TiktokenTokenizer struct {
	mu        sync.RWMutex
	encodings map[string]*tiktoken.Tiktoken
	failures  map[string]loadFailure

	load func(encoding string) (*tiktoken.Tiktoken, error)
	now  func() time.Time
}

type loadFailure struct {
	err error
	at  time.Time
}

// New creates a new TiktokenTokenizer.
func New() *TiktokenTokenizer {
	return &TiktokenTokenizer{
		encodings: make(map[string]*tiktoken.Tiktoken),
		failures:  make(map[string]loadFailure),
		load:      tiktoken.GetEncoding,
		now:       time.Now,
	}
}

// getEncoding returns the tiktoken encoding for a model, with caching.
func (t *TiktokenTokenizer) getEncoding(model string) (*tiktoken.Tiktoken, error) {
	encodingName := resolveEncoding(model)

	t.mu.RLock()
	enc, ok := t.encodings[encodingName]
	failure, failed := t.failures[encodingName]
	t.mu.RUnlock()
	if ok {
		return enc, nil
	}
	if failed && t.now().Sub(failure.at) < loadRetryInterval {
		return nil, failure.err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock
	if enc, ok = t.encodings[encodingName]; ok {
		return enc, nil
	}
	if failure, failed = t.failures[encodingName]; failed && t.now().Sub(failure.at) < loadRetryInterval {
		return nil, failure.err
	}

	enc, err := t.load(encodingName)
	if err != nil {
		err = fmt.Errorf("failed to load encoding %s: %w", encodingName, err)
		t.failures[encodingName] = loadFailure{err: err, at: t.now()}
		return nil, err
	}
	delete(t.failures, encodingName)
	t.encodings[encodingName] = enc
	return enc, nil
}

// resolveEncoding determines the encoding name for a model.
func resolveEncoding(model string) string {
	modelLower := strings.ToLower(model)

	for _, me := range modelEncodings {
		if strings.HasPrefix(modelLower, me.prefix) {
			return me.encoding
		}
	}

	return EncodingCL100kBase
}

// CountTokens counts tokens in a text string for a given model.
func (t *TiktokenTokenizer) CountTokens(text string, model string) (int, error) {
	if text == "" {
		return 0, nil
	}
	enc, err := t.getEncoding(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
