package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"
	"unicode/utf8"

	"github.com/Sourabh71/AI-Analyst/internal/analyzer"
	"github.com/Sourabh71/AI-Analyst/internal/classifier"
	"github.com/Sourabh71/AI-Analyst/internal/extractor"
	"github.com/Sourabh71/AI-Analyst/internal/metrics"
	"github.com/Sourabh71/AI-Analyst/internal/models"
	"github.com/Sourabh71/AI-Analyst/internal/prompt"
	"github.com/Sourabh71/AI-Analyst/internal/render"
	"github.com/Sourabh71/AI-Analyst/internal/repository"
	"github.com/Sourabh71/AI-Analyst/internal/storage"
	"github.com/Sourabh71/AI-Analyst/internal/utils"
)

const (
	msgTextExtracted = "Text extracted from PDF successfully!"
	msgNoText        = "No extractable text was found. The PDF may be a scanned image."
	msgOpenFailed    = "Could not open the PDF. The file may be malformed or corrupted."
	msgEncrypted     = "This PDF is encrypted. Some of its text may not be extractable."
	msgAnalysisReady = "AI Analysis Ready!"
	msgShapeError    = "Couldn't extract AI content from response."
	msgNoCredential  = "LLM API key is not configured."
	msgNoTables      = "No tables found in PDF pages."
	msgBusy          = "Another action is still running for this document"
)

type SessionService interface {
	LoadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
	RunExtraction(ctx context.Context, id string) (*models.ActionResult, error)
	ParseTables(ctx context.Context, id string) (*models.ActionResult, error)
	Classify(ctx context.Context, id string) (*models.ActionResult, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	CloseSession(ctx context.Context, id string) error
}

// Dependencies wires a SessionService. OpenDocument, Inspect and Now default
// to the PDF reader, the pdfcpu inspector and the wall clock.
type Dependencies struct {
	Repo        repository.Repository
	Storage     storage.Storage
	Analyzer    analyzer.Analyzer
	Credentials CredentialSource
	Metrics     *metrics.Metrics
	Logger      *utils.Logger
	SessionTTL  time.Duration

	OpenDocument func(data []byte) (extractor.Document, error)
	Inspect      func(data []byte) (*models.DocumentInfo, error)
	Now          func() time.Time
}

type sessionService struct {
	repo     repository.Repository
	storage  storage.Storage
	analyzer analyzer.Analyzer
	creds    CredentialSource
	metrics  *metrics.Metrics
	logger   *utils.Logger
	ttl      time.Duration
	open     func(data []byte) (extractor.Document, error)
	inspect  func(data []byte) (*models.DocumentInfo, error)
	now      func() time.Time
	locks    *sessionLocks
}

func NewService(deps Dependencies) SessionService {
	s := &sessionService{
		repo:     deps.Repo,
		storage:  deps.Storage,
		analyzer: deps.Analyzer,
		creds:    deps.Credentials,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		ttl:      deps.SessionTTL,
		open:     deps.OpenDocument,
		inspect:  deps.Inspect,
		now:      deps.Now,
		locks:    newSessionLocks(),
	}

	if s.open == nil {
		s.open = extractor.Open
	}
	if s.inspect == nil {
		s.inspect = extractor.Inspect
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.logger == nil {
		s.logger = utils.NopLogger()
	}
	s.logger = s.logger.With("component", "sessions")
	if s.ttl <= 0 {
		s.ttl = time.Hour
	}

	return s
}

// LoadDocument opens the upload, extracts its text and starts a session.
// A document that cannot be opened leaves no session behind. Sessions that
// expired without being revisited are swept first.
func (s *sessionService) LoadDocument(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	if len(req.File) == 0 {
		return nil, utils.NewBadRequestError("Uploaded file is empty")
	}

	s.sweepExpired(ctx)

	doc, err := s.open(req.File)
	if err != nil {
		s.metrics.ObserveUpload(metrics.OutcomeOpenError)
		s.logger.Warn("Failed to open document", "error", err, "filename", req.Filename)
		return nil, utils.NewBadRequestError(msgOpenFailed)
	}

	extractedText := extractor.ExtractText(doc, s.logger)
	textLength := utf8.RuneCountInString(extractedText)
	pageCount := doc.NumPage()

	var info models.DocumentInfo
	if inspected, err := s.inspect(req.File); err != nil {
		s.logger.Debug("Document metadata unavailable", "error", err, "filename", req.Filename)
	} else {
		info = *inspected
	}

	sessionID := utils.GenerateID()
	blobKey := fmt.Sprintf("sessions/%s/%s", sessionID, path.Base(req.Filename))
	if err := s.storage.Upload(ctx, blobKey, req.File, "application/pdf"); err != nil {
		s.logger.Error("Failed to store document", "error", err, "blob_key", blobKey)
		return nil, utils.WrapInternalError("Failed to store document", err)
	}

	now := s.now().UTC()
	label := classifier.Classify(extractedText)
	session := &models.Session{
		ID:             sessionID,
		Filename:       req.Filename,
		FileSize:       int64(len(req.File)),
		BlobKey:        blobKey,
		ExtractedText:  extractedText,
		PageCount:      pageCount,
		Title:          info.Title,
		Author:         info.Author,
		Producer:       info.Producer,
		Classification: label,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.Error("Failed to save session", "error", err, "session_id", sessionID)
		_ = s.storage.Delete(ctx, blobKey)
		return nil, utils.WrapInternalError("Failed to save session", err)
	}

	classification := s.classificationResult(session)
	if err := s.repo.SaveResult(ctx, classification); err != nil {
		s.logger.Error("Failed to save classification", "error", err, "session_id", sessionID)
		if purgeErr := s.purge(ctx, session); purgeErr != nil {
			s.logger.Warn("Failed to roll back session", "error", purgeErr, "session_id", sessionID)
		}
		return nil, utils.WrapInternalError("Failed to save classification", err)
	}

	notices := []models.Notice{{Level: models.LevelSuccess, Message: msgTextExtracted}}
	if extractedText == "" {
		notices = append(notices, models.Notice{Level: models.LevelWarning, Message: msgNoText})
	}
	if info.Encrypted {
		notices = append(notices, models.Notice{Level: models.LevelWarning, Message: msgEncrypted})
	}
	notices = append(notices, classification.Notices...)

	s.metrics.ObserveUpload(metrics.OutcomeOK)
	s.logger.Info("Document loaded",
		"session_id", sessionID,
		"filename", req.Filename,
		"pages", pageCount,
		"text_length", textLength,
		"classification", label)

	return &models.UploadResponse{
		ID:             sessionID,
		Filename:       req.Filename,
		FileSize:       session.FileSize,
		PageCount:      pageCount,
		TextLength:     textLength,
		Classification: label,
		Notices:        notices,
		CreatedAt:      now,
		ExpiresAt:      session.ExpiresAt,
	}, nil
}

// RunExtraction sends the document text to the model. Model and transport
// failures become notices on the result, not errors.
func (s *sessionService) RunExtraction(ctx context.Context, id string) (*models.ActionResult, error) {
	return s.runAction(ctx, id, models.ActionExtraction, func(session *models.Session) (*models.ActionResult, error) {
		payload := prompt.Build(session.ExtractedText)
		result := s.newResult(session.ID, models.ActionExtraction)

		if payload.Truncated {
			result.Notices = append(result.Notices, models.Notice{
				Level:   models.LevelInfo,
				Message: fmt.Sprintf("Only the first %d of %d characters were sent for analysis.", prompt.MaxChars, payload.OriginalChars),
			})
		}

		start := time.Now()
		content, err := s.analyzer.Analyze(ctx, payload.Prompt, s.creds.APIKey())
		if !errors.Is(err, analyzer.ErrMissingAPIKey) {
			s.metrics.ObserveLLM(time.Since(start))
		}

		outcome, notice := describeLLMOutcome(err)
		s.metrics.ObserveAction(string(models.ActionExtraction), outcome)
		result.Notices = append(result.Notices, notice)

		if err != nil {
			s.logger.Warn("LLM extraction failed", "session_id", session.ID, "outcome", outcome, "error", err)
			return result, nil
		}

		result.OK = true
		result.Analysis = content
		if html, err := render.Markdown(content); err != nil {
			s.logger.Warn("Failed to render analysis", "session_id", session.ID, "error", err)
		} else {
			result.AnalysisHTML = html
		}

		s.logger.Info("LLM extraction completed",
			"session_id", session.ID,
			"prompt_length", utf8.RuneCountInString(payload.Text),
			"truncated", payload.Truncated,
			"analysis_length", utf8.RuneCountInString(content))

		return result, nil
	})
}

func describeLLMOutcome(err error) (string, models.Notice) {
	var (
		apiErr       *analyzer.APIError
		shapeErr     *analyzer.ResponseShapeError
		transportErr *analyzer.TransportError
	)

	switch {
	case err == nil:
		return metrics.OutcomeOK, models.Notice{Level: models.LevelSuccess, Message: msgAnalysisReady}
	case errors.Is(err, analyzer.ErrMissingAPIKey):
		return metrics.OutcomeNoCredential, models.Notice{Level: models.LevelError, Message: msgNoCredential}
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPIError, models.Notice{Level: models.LevelError, Message: apiErr.Error()}
	case errors.As(err, &shapeErr):
		return metrics.OutcomeShapeError, models.Notice{Level: models.LevelError, Message: msgShapeError}
	case errors.As(err, &transportErr):
		return metrics.OutcomeTransportError, models.Notice{Level: models.LevelError, Message: fmt.Sprintf("Could not reach the LLM service: %v", transportErr.Err)}
	default:
		return metrics.OutcomeTransportError, models.Notice{Level: models.LevelError, Message: fmt.Sprintf("LLM extraction failed: %v", err)}
	}
}

// ParseTables re-opens the stored document and scans every page for tables.
func (s *sessionService) ParseTables(ctx context.Context, id string) (*models.ActionResult, error) {
	return s.runAction(ctx, id, models.ActionTables, func(session *models.Session) (*models.ActionResult, error) {
		result := s.newResult(session.ID, models.ActionTables)

		data, err := s.storage.Download(ctx, session.BlobKey)
		if err != nil {
			s.logger.Error("Failed to load stored document", "error", err, "session_id", session.ID)
			return nil, utils.WrapInternalError("Failed to load stored document", err)
		}

		doc, err := s.open(data)
		if err != nil {
			s.metrics.ObserveAction(string(models.ActionTables), metrics.OutcomeOpenError)
			result.Notices = append(result.Notices, models.Notice{Level: models.LevelError, Message: msgOpenFailed})
			return result, nil
		}

		pages := extractor.ExtractTables(doc, s.logger)
		for _, p := range pages {
			result.Notices = append(result.Notices, models.Notice{
				Level:   models.LevelInfo,
				Message: fmt.Sprintf("Table found on page %d", p.Page),
			})
		}

		if len(pages) == 0 {
			s.metrics.ObserveAction(string(models.ActionTables), metrics.OutcomeEmpty)
			result.Notices = append(result.Notices, models.Notice{Level: models.LevelWarning, Message: msgNoTables})
		} else {
			s.metrics.ObserveAction(string(models.ActionTables), metrics.OutcomeOK)
		}

		result.OK = true
		result.Tables = pages
		return result, nil
	})
}

// Classify labels the stored text again. The label only depends on the text.
func (s *sessionService) Classify(ctx context.Context, id string) (*models.ActionResult, error) {
	return s.runAction(ctx, id, models.ActionClassification, func(session *models.Session) (*models.ActionResult, error) {
		s.metrics.ObserveAction(string(models.ActionClassification), metrics.OutcomeOK)
		return s.classificationResult(session), nil
	})
}

func (s *sessionService) classificationResult(session *models.Session) *models.ActionResult {
	label := classifier.Classify(session.ExtractedText)
	result := s.newResult(session.ID, models.ActionClassification)
	result.OK = true
	result.Label = label
	result.Notices = []models.Notice{classifier.Notice(label)}
	return result
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.ListResults(ctx, id)
	if err != nil {
		s.logger.Error("Failed to list results", "error", err, "session_id", id)
		return nil, utils.WrapInternalError("Failed to retrieve session", err)
	}
	session.Results = results

	return session, nil
}

func (s *sessionService) CloseSession(ctx context.Context, id string) error {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return err
	}

	if !s.locks.tryAcquire(id) {
		return utils.NewConflictError(msgBusy)
	}
	defer s.locks.release(id)

	return s.purge(ctx, session)
}

// runAction serializes actions per session, runs fn and stores its result
// in place of the previous result for the same action.
func (s *sessionService) runAction(ctx context.Context, id string, action models.Action, fn func(*models.Session) (*models.ActionResult, error)) (*models.ActionResult, error) {
	if !s.locks.tryAcquire(id) {
		return nil, utils.NewConflictError(msgBusy)
	}
	defer s.locks.release(id)

	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := fn(session)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveResult(ctx, result); err != nil {
		s.logger.Error("Failed to save action result", "error", err, "session_id", id, "action", action)
		return nil, utils.WrapInternalError("Failed to save result", err)
	}

	return result, nil
}

// loadSession returns a live session. Expired sessions are purged and
// reported as missing.
func (s *sessionService) loadSession(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get session", "error", err, "session_id", id)
		return nil, utils.WrapInternalError("Failed to retrieve session", err)
	}
	if session == nil {
		return nil, utils.NewNotFoundError("Session not found")
	}

	if session.Expired(s.now()) {
		if err := s.purge(ctx, session); err != nil {
			s.logger.Warn("Failed to purge expired session", "error", err, "session_id", id)
		}
		return nil, utils.NewNotFoundError("Session not found")
	}

	session.State = models.StateDocumentLoaded
	return session, nil
}

// sweepExpired drops every expired session and its stored document. Failures
// are logged and never block the caller.
func (s *sessionService) sweepExpired(ctx context.Context) {
	blobKeys, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Warn("Failed to sweep expired sessions", "error", err)
		return
	}

	for _, key := range blobKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to delete stored document", "error", err, "blob_key", key)
		}
	}
	if len(blobKeys) > 0 {
		s.logger.Info("Expired sessions swept", "count", len(blobKeys))
	}
}

func (s *sessionService) purge(ctx context.Context, session *models.Session) error {
	if err := s.storage.Delete(ctx, session.BlobKey); err != nil {
		s.logger.Warn("Failed to delete stored document", "error", err, "blob_key", session.BlobKey)
	}
	if err := s.repo.Delete(ctx, session.ID); err != nil {
		s.logger.Error("Failed to delete session", "error", err, "session_id", session.ID)
		return utils.WrapInternalError("Failed to delete session", err)
	}

	s.logger.Info("Session closed", "session_id", session.ID)
	return nil
}

func (s *sessionService) newResult(sessionID string, action models.Action) *models.ActionResult {
	return &models.ActionResult{
		SessionID:   sessionID,
		Action:      action,
		Notices:     []models.Notice{},
		CompletedAt: s.now().UTC(),
	}
}
