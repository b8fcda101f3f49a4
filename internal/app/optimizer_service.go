package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cvboost/internal/model"
	"cvboost/internal/pkg/pdfextract"
	"cvboost/internal/workflow"
)

var (
	ErrNotPDF          = errors.New("only pdf uploads are accepted")
	ErrFileTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrNoActiveSession = errors.New("no active session")
	ErrTurnInFlight    = errors.New("a turn is already in flight")
	ErrMessageEmpty    = errors.New("message content is empty")
	ErrConfirmRequired = errors.New("reset requires explicit confirmation")
	ErrParseFailed     = errors.New("document parse failed")
	ErrFinalizeFailed  = errors.New("finalize failed")
	ErrSessionNotFound = errors.New("session not found")
)

// SessionState is the lifecycle position of one editing engagement.
type SessionState string

const (
	StateEmpty      SessionState = "empty"
	StateUploading  SessionState = "uploading"
	StateEditable   SessionState = "active_editable"
	StateChatOnly   SessionState = "active_chat_only"
	StateFinalizing SessionState = "finalizing"
)

// DeliveryState tracks the two-phase life of a transcript entry: shown
// optimistically as pending, promoted to committed once its row is confirmed
// written, or flagged failed so an unconfirmed entry never masquerades as
// committed.
type DeliveryState string

const (
	DeliveryPending   DeliveryState = "pending"
	DeliveryCommitted DeliveryState = "committed"
	DeliveryFailed    DeliveryState = "failed"
)

// TranscriptEntry is one visible line of a session's conversation. System
// entries (thinking placeholder, inline turn errors) exist only in memory and
// are never persisted.
type TranscriptEntry struct {
	ID        string        `json:"id"`
	Sender    model.Sender  `json:"sender"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Delivery  DeliveryState `json:"delivery"`
	System    bool          `json:"is_system,omitempty"`
}

// Snapshot is the externally visible state of a user's current engagement.
type Snapshot struct {
	State      SessionState      `json:"state"`
	SessionID  string            `json:"session_id,omitempty"`
	FileName   string            `json:"file_name,omitempty"`
	DraftURL   string            `json:"draft_url,omitempty"`
	HasText    bool              `json:"has_text"`
	Transcript []TranscriptEntry `json:"transcript"`
}

// SessionStore is the slice of the session repository the manager needs.
type SessionStore interface {
	Create(session *model.Session) error
	LatestActiveByUserID(userID uint) (*model.Session, error)
	GetByIDAndUserID(sessionID string, userID uint) (*model.Session, error)
	UpdateText(sessionID, text string) error
	UpdateDraftURL(sessionID, draftURL string) error
}

type MessageStore interface {
	Create(message *model.Message) error
	ListBySessionID(sessionID string, limit int) ([]model.Message, error)
}

// Gateway is the workflow webhook surface the session manager drives.
type Gateway interface {
	ParseCV(ctx context.Context, userID uint, filename string, file io.Reader) (*workflow.ParseResult, error)
	Optimize(ctx context.Context, req workflow.OptimizeRequest) (*workflow.OptimizeResult, error)
	Finalize(ctx context.Context, sessionID string, userID uint) (*workflow.FinalizeResult, error)
}

type TranscriptCache interface {
	GetHistory(ctx context.Context, sessionID string) ([]model.Message, bool, error)
	SetHistory(ctx context.Context, sessionID string, messages []model.Message) error
	DeleteHistory(ctx context.Context, sessionID string) error
	MarkDirty(ctx context.Context, sessionID string) error
	IsDirty(ctx context.Context, sessionID string) (bool, error)
}

// OptimizerService owns the upload → parse → chat-loop → finalize lifecycle,
// reconciling per-user in-memory state with persisted rows. At most one turn
// per session is in flight at a time; concurrent edits of the same session
// from separate processes resolve last-write-wins on the text column.
type OptimizerService struct {
	sessions       SessionStore
	messages       MessageStore
	gateway        Gateway
	cache          TranscriptCache
	maxUploadBytes int64

	mu     sync.Mutex
	active map[uint]*engagement

	now   func() time.Time
	newID func() string
}

// engagement is the in-memory side of one user's current session.
type engagement struct {
	mu         sync.Mutex
	busy       bool
	state      SessionState
	sessionID  string
	fileName   string
	draftURL   string
	text       string
	transcript []TranscriptEntry
}

func NewOptimizerService(
	sessions SessionStore,
	messages MessageStore,
	gateway Gateway,
	cache TranscriptCache,
	maxUploadBytes int64,
) *OptimizerService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 * 1024 * 1024
	}
	return &OptimizerService{
		sessions:       sessions,
		messages:       messages,
		gateway:        gateway,
		cache:          cache,
		maxUploadBytes: maxUploadBytes,
		active:         make(map[uint]*engagement),
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// Restore fetches the user's most recent active session and its transcript.
// It never fails the caller: any lookup error is logged and the user lands on
// an empty state. A session stored without text comes back chat-only.
func (s *OptimizerService) Restore(ctx context.Context, userID uint) (*Snapshot, error) {
	if userID == 0 {
		return emptySnapshot(), nil
	}
	eng := s.engagementFor(ctx, userID)
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.snapshotLocked(), nil
}

// Upload starts a new engagement from a PDF. Validation failures change no
// state; a parse or persistence failure reverts to Empty so no half-created
// session is ever visible.
func (s *OptimizerService) Upload(ctx context.Context, userID uint, filename, contentType string, data []byte) (*Snapshot, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if contentType != "" && contentType != "application/pdf" {
		return nil, ErrNotPDF
	}
	if !pdfextract.IsPDF(data) {
		return nil, ErrNotPDF
	}

	eng := s.engagementFor(ctx, userID)
	eng.mu.Lock()
	if eng.busy {
		eng.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	eng.busy = true
	eng.reset()
	eng.state = StateUploading
	eng.fileName = filename
	eng.mu.Unlock()

	parse, err := s.gateway.ParseCV(ctx, userID, filename, bytes.NewReader(data))
	if err != nil {
		log.Printf("parse cv failed for user %d: %v", userID, err)
		s.revertEmpty(eng)
		return nil, ErrParseFailed
	}
	if uuid.Validate(parse.SessionID) != nil {
		log.Printf("parse cv returned invalid session id %q", parse.SessionID)
		s.revertEmpty(eng)
		return nil, ErrParseFailed
	}

	text := parse.Text
	if strings.TrimSpace(text) == "" {
		// The workflow run sometimes stores the file without extracting
		// text; fall back to local extraction before degrading to
		// chat-only.
		if local, extractErr := pdfextract.ExtractText(data); extractErr == nil {
			text = local
		}
	}

	session := &model.Session{
		ID:          parse.SessionID,
		UserID:      userID,
		Status:      model.SessionActive,
		OriginalURL: parse.OriginalURL,
		TextContent: text,
	}
	if err := s.sessions.Create(session); err != nil {
		log.Printf("persist session %s failed: %v", parse.SessionID, err)
		s.revertEmpty(eng)
		return nil, err
	}

	intro := "I've analyzed **" + filename + "**. I'm ready to help you optimize it."
	introEntry := s.persistMessage(parse.SessionID, model.SenderAssistant, intro)
	s.invalidateCache(ctx, parse.SessionID)

	eng.mu.Lock()
	defer eng.mu.Unlock()
	eng.sessionID = parse.SessionID
	eng.text = text
	eng.draftURL = parse.OriginalURL
	eng.transcript = []TranscriptEntry{introEntry}
	if strings.TrimSpace(text) == "" {
		eng.state = StateChatOnly
	} else {
		eng.state = StateEditable
	}
	eng.busy = false
	return eng.snapshotLocked(), nil
}

// Send runs one chat turn. The user entry is appended optimistically as
// pending and promoted (or flagged failed) once its row is written. A
// workflow failure surfaces as a non-persisted inline error entry so the user
// can retry; it never fails the request.
func (s *OptimizerService) Send(ctx context.Context, userID uint, content string) (*Snapshot, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMessageEmpty
	}
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	eng := s.engagementFor(ctx, userID)
	eng.mu.Lock()
	if eng.sessionID == "" {
		eng.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	if eng.busy {
		eng.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	eng.busy = true
	sessionID := eng.sessionID
	currentText := eng.text

	userEntry := TranscriptEntry{
		ID:        s.newID(),
		Sender:    model.SenderUser,
		Content:   content,
		CreatedAt: s.now(),
		Delivery:  DeliveryPending,
	}
	eng.transcript = append(eng.transcript, userEntry)
	eng.mu.Unlock()

	defer func() {
		eng.mu.Lock()
		eng.busy = false
		eng.mu.Unlock()
	}()

	if err := s.messages.Create(&model.Message{
		ID:        userEntry.ID,
		SessionID: sessionID,
		Sender:    model.SenderUser,
		Content:   content,
		CreatedAt: userEntry.CreatedAt,
	}); err != nil {
		log.Printf("persist user message failed for session %s: %v", sessionID, err)
		eng.mu.Lock()
		eng.setDelivery(userEntry.ID, DeliveryFailed)
		eng.appendSystem(s.newID(), s.now(), "Error: your message could not be saved. Please try again.")
		snap := eng.snapshotLocked()
		eng.mu.Unlock()
		return snap, nil
	}
	eng.mu.Lock()
	eng.setDelivery(userEntry.ID, DeliveryCommitted)
	eng.appendSystem(s.newID(), s.now(), "Thinking...")
	eng.mu.Unlock()
	s.invalidateCache(ctx, sessionID)

	turnText := currentText
	if strings.TrimSpace(turnText) == "" {
		// chat-only: a single whitespace sentinel tells the workflow run
		// there is no document to regenerate
		turnText = " "
	}

	result, err := s.gateway.Optimize(ctx, workflow.OptimizeRequest{
		SessionID:   sessionID,
		CurrentText: turnText,
		Instruction: content,
	})
	if err != nil {
		log.Printf("optimize turn failed for session %s: %v", sessionID, err)
		eng.mu.Lock()
		eng.dropSystemEntries()
		eng.appendSystem(s.newID(), s.now(), "Error: could not reach the AI editor. Please try again.")
		snap := eng.snapshotLocked()
		eng.mu.Unlock()
		return snap, nil
	}

	reply := strings.TrimSpace(result.Message)
	if reply == "" {
		reply = "Request processed."
	}
	assistantEntry := s.persistMessage(sessionID, model.SenderAssistant, reply)
	s.invalidateCache(ctx, sessionID)

	eng.mu.Lock()
	defer eng.mu.Unlock()
	eng.dropSystemEntries()
	eng.transcript = append(eng.transcript, assistantEntry)

	if result.Kind == workflow.KindDocumentUpdate && result.OptimizedText != "" {
		eng.text = result.OptimizedText
		eng.state = StateEditable
		if err := s.sessions.UpdateText(sessionID, result.OptimizedText); err != nil {
			log.Printf("update session text failed for %s: %v", sessionID, err)
		}
		switch {
		case result.DraftURL != "":
			eng.draftURL = result.DraftURL
			if err := s.sessions.UpdateDraftURL(sessionID, result.DraftURL); err != nil {
				log.Printf("update session draft url failed for %s: %v", sessionID, err)
			}
		case result.PDFBase64 != "":
			// rendered draft delivered inline; viewable but not addressable
			eng.draftURL = "data:application/pdf;base64," + result.PDFBase64
		}
	}
	return eng.snapshotLocked(), nil
}

// Finalize requests the permanent download artifact for the current session.
// It requires an authenticated identity and an active session, and touches
// neither the transcript nor the text.
func (s *OptimizerService) Finalize(ctx context.Context, userID uint) (*workflow.FinalizeResult, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	eng := s.engagementFor(ctx, userID)

	eng.mu.Lock()
	if eng.sessionID == "" {
		eng.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	if eng.busy {
		eng.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	eng.busy = true
	sessionID := eng.sessionID
	previous := eng.state
	eng.state = StateFinalizing
	eng.mu.Unlock()

	result, err := s.gateway.Finalize(ctx, sessionID, userID)

	eng.mu.Lock()
	eng.state = previous
	eng.busy = false
	eng.mu.Unlock()

	if err != nil {
		log.Printf("finalize failed for session %s: %v", sessionID, err)
		return nil, ErrFinalizeFailed
	}
	if result.DownloadURL == "" {
		return nil, ErrFinalizeFailed
	}
	return result, nil
}

// Reset clears the in-memory engagement after explicit confirmation.
// Persisted rows are untouched; the prior session remains reachable only by
// restoration order, never through a listing.
func (s *OptimizerService) Reset(userID uint, confirmed bool) (*Snapshot, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if !confirmed {
		return nil, ErrConfirmRequired
	}

	s.mu.Lock()
	eng, ok := s.active[userID]
	if !ok {
		eng = &engagement{state: StateEmpty}
		s.active[userID] = eng
	}
	s.mu.Unlock()

	eng.mu.Lock()
	defer eng.mu.Unlock()
	if eng.busy {
		return nil, ErrTurnInFlight
	}
	eng.reset()
	return eng.snapshotLocked(), nil
}

// History returns the persisted transcript of one of the user's sessions,
// served from the cache when it is fresh.
func (s *OptimizerService) History(ctx context.Context, userID uint, sessionID string, limit int) ([]model.Message, error) {
	if userID == 0 || sessionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.sessions.GetByIDAndUserID(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, sessionID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetHistory(ctx, sessionID); cacheErr == nil && hit {
				return trimMessages(cached, limit), nil
			}
		}
	}

	messages, err := s.messages.ListBySessionID(sessionID, limit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx, sessionID); dirtyErr == nil && !dirty {
			_ = s.cache.SetHistory(ctx, sessionID, messages)
		}
	}
	return messages, nil
}

// engagementFor returns the user's in-memory engagement, restoring it from
// storage on first touch.
func (s *OptimizerService) engagementFor(ctx context.Context, userID uint) *engagement {
	s.mu.Lock()
	if eng, ok := s.active[userID]; ok {
		s.mu.Unlock()
		return eng
	}
	eng := &engagement{state: StateEmpty}
	// Hold the engagement lock across the first-touch restore so a racing
	// request for the same user blocks until the state is populated instead
	// of observing the empty placeholder.
	eng.mu.Lock()
	defer eng.mu.Unlock()
	s.active[userID] = eng
	s.mu.Unlock()

	session, err := s.sessions.LatestActiveByUserID(userID)
	if err != nil {
		log.Printf("restore session lookup failed for user %d: %v", userID, err)
		return eng
	}
	if session == nil {
		return eng
	}

	var transcript []TranscriptEntry
	history, err := s.loadHistory(ctx, session.ID)
	if err != nil {
		log.Printf("restore history failed for session %s: %v", session.ID, err)
	} else {
		transcript = make([]TranscriptEntry, 0, len(history))
		for _, m := range history {
			transcript = append(transcript, TranscriptEntry{
				ID:        m.ID,
				Sender:    m.Sender,
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
				Delivery:  DeliveryCommitted,
			})
		}
	}

	eng.sessionID = session.ID
	eng.text = session.TextContent
	if session.DraftURL != "" {
		eng.draftURL = session.DraftURL
	} else {
		eng.draftURL = session.OriginalURL
	}
	eng.transcript = transcript
	if strings.TrimSpace(session.TextContent) == "" {
		eng.state = StateChatOnly
	} else {
		eng.state = StateEditable
	}
	return eng
}

func (s *OptimizerService) loadHistory(ctx context.Context, sessionID string) ([]model.Message, error) {
	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, sessionID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetHistory(ctx, sessionID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}
	return s.messages.ListBySessionID(sessionID, 0)
}

// persistMessage writes an assistant row and mirrors it as a transcript entry
// whose delivery state records the write outcome.
func (s *OptimizerService) persistMessage(sessionID string, sender model.Sender, content string) TranscriptEntry {
	entry := TranscriptEntry{
		ID:        s.newID(),
		Sender:    sender,
		Content:   content,
		CreatedAt: s.now(),
		Delivery:  DeliveryCommitted,
	}
	if err := s.messages.Create(&model.Message{
		ID:        entry.ID,
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
		CreatedAt: entry.CreatedAt,
	}); err != nil {
		log.Printf("persist %s message failed for session %s: %v", sender, sessionID, err)
		entry.Delivery = DeliveryFailed
	}
	return entry
}

func (s *OptimizerService) invalidateCache(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.MarkDirty(ctx, sessionID)
	_ = s.cache.DeleteHistory(ctx, sessionID)
}

func (s *OptimizerService) revertEmpty(eng *engagement) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	eng.reset()
}

func (e *engagement) reset() {
	e.state = StateEmpty
	e.sessionID = ""
	e.fileName = ""
	e.draftURL = ""
	e.text = ""
	e.transcript = nil
	e.busy = false
}

func (e *engagement) setDelivery(entryID string, state DeliveryState) {
	for i := range e.transcript {
		if e.transcript[i].ID == entryID {
			e.transcript[i].Delivery = state
			return
		}
	}
}

func (e *engagement) appendSystem(id string, at time.Time, content string) {
	e.transcript = append(e.transcript, TranscriptEntry{
		ID:        id,
		Sender:    model.SenderAssistant,
		Content:   content,
		CreatedAt: at,
		Delivery:  DeliveryCommitted,
		System:    true,
	})
}

func (e *engagement) dropSystemEntries() {
	kept := e.transcript[:0]
	for _, entry := range e.transcript {
		if !entry.System {
			kept = append(kept, entry)
		}
	}
	e.transcript = kept
}

func (e *engagement) snapshotLocked() *Snapshot {
	transcript := make([]TranscriptEntry, len(e.transcript))
	copy(transcript, e.transcript)
	return &Snapshot{
		State:      e.state,
		SessionID:  e.sessionID,
		FileName:   e.fileName,
		DraftURL:   e.draftURL,
		HasText:    strings.TrimSpace(e.text) != "",
		Transcript: transcript,
	}
}

func emptySnapshot() *Snapshot {
	return &Snapshot{State: StateEmpty, Transcript: []TranscriptEntry{}}
}

func trimMessages(messages []model.Message, limit int) []model.Message {
	if limit <= 0 || limit >= len(messages) {
		return messages
	}
	return messages[len(messages)-limit:]
}
