package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/miskai-core/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/miskai-core/internal/bridge"
	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/domain"
	"github.com/heartmarshall/miskai-core/internal/pipeline"
)

// core is the part of the boundary the handlers need.
type core interface {
	Dispatch(c bridge.Call) bridge.Reply
	Engine() *pipeline.Engine
	LoadDictionaryBytes(lang string, source []byte, format dictionary.Format) error
}

// storedLanguages lists the dictionaries kept in the lexicon database.
type storedLanguages interface {
	Languages(ctx context.Context) ([]lexicon.LanguageCount, error)
}

// Handler serves the pipeline API.
type Handler struct {
	core   core
	stored storedLanguages // nil without a database
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLexicon makes GET /v1/dictionaries report stored languages too.
func WithLexicon(s storedLanguages) HandlerOption {
	return func(h *Handler) { h.stored = s }
}

// NewHandler creates a Handler over the given boundary.
func NewHandler(c core, opts ...HandlerOption) *Handler {
	h := &Handler{core: c}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ChannelRequest is one call of the closed call set.
type ChannelRequest struct {
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// Channel executes one boundary call. The reply is always 200 unless the
// request itself cannot be decoded.
func (h *Handler) Channel(w http.ResponseWriter, r *http.Request) {
	var req ChannelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	call, err := bridge.DecodeCall(req.Method, req.Args)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.core.Dispatch(call))
}

// ProcessRequest is the body of POST /v1/process.
type ProcessRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Detail   bool   `json:"detail,omitempty"`
}

// TokenResponse describes how one token was transcribed.
type TokenResponse struct {
	Text     string   `json:"text"`
	Source   string   `json:"source"`
	Raw      []string `json:"raw,omitempty"`
	Phonemes []string `json:"phonemes,omitempty"`
	Output   string   `json:"output"`
	Sentence int      `json:"sentence"`
}

// ProcessResponse is the answer of POST /v1/process.
type ProcessResponse struct {
	Output string          `json:"output"`
	Tokens []TokenResponse `json:"tokens,omitempty"`
}

// Process transcribes text. Unlike the channel, failures are reported with a
// status code instead of an empty result.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	engine := h.core.Engine()
	if engine == nil {
		writeError(w, r, domain.ErrNotInitialized)
		return
	}

	if !req.Detail {
		out, err := engine.Process(req.Text, req.Language)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ProcessResponse{Output: out})
		return
	}

	results, err := engine.Analyze(req.Text, req.Language)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := ProcessResponse{Output: pipeline.Join(results), Tokens: make([]TokenResponse, len(results))}
	for i, res := range results {
		resp.Tokens[i] = TokenResponse{
			Text:     res.Token.Text,
			Source:   string(res.Source),
			Raw:      symbols(res.Raw),
			Phonemes: symbols(res.Phonemes),
			Output:   res.Output,
			Sentence: res.Token.Sentence,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// LoadDictionary replaces the dictionary of {language} with the request body.
// The format comes from ?format= and defaults to auto.
func (h *Handler) LoadDictionary(w http.ResponseWriter, r *http.Request) {
	format, err := dictionary.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	src, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.core.LoadDictionaryBytes(chi.URLParam(r, "language"), src, format); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DictionaryResponse describes one dictionary, loaded in the engine, stored
// in the lexicon database, or both.
type DictionaryResponse struct {
	Language   string          `json:"language"`
	Loaded     bool            `json:"loaded"`
	Format     string          `json:"format,omitempty"`
	Words      int             `json:"words"`
	Records    int             `json:"records"`
	Duplicates int             `json:"duplicates"`
	Skipped    int             `json:"skipped"`
	LoadedAt   *time.Time      `json:"loaded_at,omitempty"`
	Stored     *StoredResponse `json:"stored,omitempty"`
}

// StoredResponse is the lexicon database side of a dictionary.
type StoredResponse struct {
	Words     int       `json:"words"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListDictionaries lists the loaded dictionaries, followed by languages that
// are only stored, sorted by language within each group.
func (h *Handler) ListDictionaries(w http.ResponseWriter, r *http.Request) {
	engine := h.core.Engine()
	if engine == nil {
		writeError(w, r, domain.ErrNotInitialized)
		return
	}

	out := []DictionaryResponse{}
	index := make(map[string]int)
	for _, lang := range engine.Languages() {
		d, err := engine.Dictionary(lang.String())
		if err != nil {
			continue // unloaded since Languages
		}
		st := d.Stats()
		loadedAt := d.LoadedAt()
		index[lang.String()] = len(out)
		out = append(out, DictionaryResponse{
			Language:   lang.String(),
			Loaded:     true,
			Format:     d.Format().String(),
			Words:      d.Len(),
			Records:    st.Records,
			Duplicates: st.Duplicates,
			Skipped:    st.Skipped,
			LoadedAt:   &loadedAt,
		})
	}

	if h.stored != nil {
		counts, err := h.stored.Languages(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		for _, c := range counts {
			stored := &StoredResponse{Words: c.Words, UpdatedAt: c.UpdatedAt}
			if i, ok := index[c.Language.String()]; ok {
				out[i].Stored = stored
				continue
			}
			out = append(out, DictionaryResponse{Language: c.Language.String(), Stored: stored})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// WordResponse is a dictionary entry.
type WordResponse struct {
	Word          string   `json:"word"`
	Language      string   `json:"language"`
	Phonemes      []string `json:"phonemes"`
	Transcription string   `json:"transcription"`
	POS           string   `json:"pos,omitempty"`
}

// LookupWord returns the dictionary entry of {word}, without fallback.
func (h *Handler) LookupWord(w http.ResponseWriter, r *http.Request) {
	engine := h.core.Engine()
	if engine == nil {
		writeError(w, r, domain.ErrNotInitialized)
		return
	}

	lang, word := chi.URLParam(r, "language"), chi.URLParam(r, "word")
	entry, err := engine.Lookup(lang, word)
	if err != nil {
		writeError(w, r, err)
		return
	}
	l, _ := domain.ParseLanguage(lang)
	writeJSON(w, http.StatusOK, WordResponse{
		Word:          word,
		Language:      l.String(),
		Phonemes:      symbols(entry.Phonemes),
		Transcription: entry.Phonemes.String(),
		POS:           entry.POS.String(),
	})
}

func symbols(seq domain.Sequence) []string {
	if len(seq) == 0 {
		return nil
	}
	out := make([]string, len(seq))
	for i, s := range seq {
		out[i] = string(s)
	}
	return out
}
