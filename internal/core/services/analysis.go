package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
	"github.com/custodia-labs/etis-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// DownloadFailedMessage is shown to the user when a download cannot be saved.
const DownloadFailedMessage = "File not found. Run an analysis first."

// AnalysisService orchestrates login, analysis and download calls and
// commits their results to the session and charts stores.
type AnalysisService struct {
	api      driven.GradingAPI
	sessions *SessionStore
	charts   *ChartsStore
	history  driven.HistoryStore
	saver    driven.FileSaver
	notifier driven.Notifier

	// seq fences overlapping Analyze calls: only the latest may commit.
	commitMu sync.Mutex
	seq      uint64
}

// NewAnalysisService creates a new analysis service.
// history is optional - if nil, analyses and downloads are not recorded.
func NewAnalysisService(
	api driven.GradingAPI,
	sessions *SessionStore,
	charts *ChartsStore,
	history driven.HistoryStore,
	saver driven.FileSaver,
	notifier driven.Notifier,
) *AnalysisService {
	return &AnalysisService{
		api:      api,
		sessions: sessions,
		charts:   charts,
		history:  history,
		saver:    saver,
		notifier: notifier,
	}
}

// Login authenticates and commits a new session.
// Credentials are sent as given; errors from the grading service propagate
// unchanged.
func (a *AnalysisService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	terms, err := a.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(creds, terms)
	a.sessions.SetUser(session)
	logger.Debug("logged in as %s with %d terms", creds.Username, len(terms))

	return session.Clone(), nil
}

// Logout tears down the session and the chart data.
func (a *AnalysisService) Logout() {
	a.commitMu.Lock()
	a.seq++
	a.commitMu.Unlock()

	a.sessions.DeleteUser()
	a.charts.Reset()
}

// Analyze requests an analysis for term and commits the chart data.
//
// The term is selected before the request is sent. The loading flag is
// raised for the duration of the call and released on every exit path by
// the most recently issued call. A call superseded by a later one returns
// its result without committing it.
func (a *AnalysisService) Analyze(
	ctx context.Context,
	creds domain.Credentials,
	term string,
) (*domain.AnalysisResult, error) {
	a.sessions.SetSelectedTerm(term)

	a.commitMu.Lock()
	a.seq++
	seq := a.seq
	a.charts.SetLoading(true)
	a.commitMu.Unlock()

	defer func() {
		a.commitMu.Lock()
		defer a.commitMu.Unlock()
		if a.seq == seq {
			a.charts.SetLoading(false)
		}
	}()

	result, err := a.api.Analyze(ctx, driven.AnalyzeRequest{
		Username: creds.Username,
		Password: creds.Password,
		Term:     term,
	})
	if err != nil {
		logger.Error("analysis failed: %v", err)
		return nil, err
	}
	if !result.Success {
		analysisErr := domain.NewAnalysisError(result.Message)
		logger.Error("analysis failed: %v", analysisErr)
		return nil, analysisErr
	}
	if err := errors.Join(result.Bar.Validate(), result.Line.Validate()); err != nil {
		logger.Warn("analysis for term %q has unpaired points, padding with 0: %v", domain.TermLabel(term), err)
	}

	if !a.commit(seq, result) {
		logger.Debug("analysis for term %q superseded, not committed", domain.TermLabel(term))
		return result, nil
	}

	a.record(ctx, creds.Username, term, result)
	return result, nil
}

func (a *AnalysisService) commit(seq uint64, result *domain.AnalysisResult) bool {
	a.commitMu.Lock()
	defer a.commitMu.Unlock()

	if a.seq != seq {
		return false
	}
	a.charts.SetBarData(result.Bar)
	a.charts.SetLineData(result.Line)
	return true
}

func (a *AnalysisService) record(ctx context.Context, username, term string, result *domain.AnalysisResult) {
	if a.history == nil {
		return
	}

	err := a.history.SaveAnalysis(ctx, &domain.AnalysisRecord{
		Username:  username,
		Term:      term,
		Bar:       result.Bar,
		Line:      result.Line,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.Warn("failed to record analysis: %v", err)
	}
}

// DownloadFile saves an export of the last analysis for the current user
// and selected term. Failures are logged and shown through the notifier,
// never returned. Returns the saved path, or "" on failure.
func (a *AnalysisService) DownloadFile(ctx context.Context, fileType domain.FileType) string {
	session := a.sessions.Session()

	var username, term string
	if session != nil {
		username = session.Username
		term = session.SelectedTermOrAll()
	}

	path, size, err := a.download(ctx, fileType, username, term)
	if err != nil {
		logger.Error("download %s: %v", fileType, err)
		a.alert(DownloadFailedMessage)
		return ""
	}

	if a.history != nil {
		err := a.history.SaveDownload(ctx, &domain.DownloadRecord{
			Username:  username,
			Term:      term,
			FileType:  fileType,
			Path:      path,
			Size:      size,
			CreatedAt: time.Now(),
		})
		if err != nil {
			logger.Warn("failed to record download: %v", err)
		}
	}

	return path
}

func (a *AnalysisService) download(
	ctx context.Context,
	fileType domain.FileType,
	username, term string,
) (string, int64, error) {
	if !fileType.IsKnown() {
		logger.Warn("unknown file type %q, saving as %s", fileType, fileType.FileName())
	}

	data, err := a.api.Download(ctx, fileType, username, term)
	if err != nil {
		return "", 0, err
	}

	if a.saver == nil {
		return "", 0, errors.New("no file saver configured")
	}
	path, err := a.saver.Save(fileType.FileName(), data)
	if err != nil {
		return "", 0, fmt.Errorf("save %s: %w", fileType.FileName(), err)
	}
	return path, int64(len(data)), nil
}

func (a *AnalysisService) alert(message string) {
	if a.notifier == nil {
		return
	}
	a.notifier.Alert(message)
}

// RestoreLatest loads the most recent recorded analysis for the current
// session and selected term into the charts store. It is a no-op when no
// history is configured or nothing was recorded.
func (a *AnalysisService) RestoreLatest(ctx context.Context) error {
	session := a.sessions.Session()
	if err := domain.RequireSession(session); err != nil {
		return err
	}
	if a.history == nil {
		return nil
	}

	record, err := a.history.LatestAnalysis(ctx, session.Username, session.SelectedTermOrAll())
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load latest analysis: %w", err)
	}

	a.commitMu.Lock()
	defer a.commitMu.Unlock()
	if a.charts.HasData() {
		return nil
	}
	a.charts.SetBarData(record.Bar)
	a.charts.SetLineData(record.Line)
	logger.Debug("restored analysis %s from %s", record.ID, record.CreatedAt.Format(time.RFC3339))

	return nil
}

// History returns the current user's recent analyses and downloads.
func (a *AnalysisService) History(
	ctx context.Context,
	limit int,
) ([]domain.AnalysisRecord, []domain.DownloadRecord, error) {
	session := a.sessions.Session()
	if err := domain.RequireSession(session); err != nil {
		return nil, nil, err
	}
	if a.history == nil {
		return []domain.AnalysisRecord{}, []domain.DownloadRecord{}, nil
	}

	analyses, err := a.history.ListAnalyses(ctx, session.Username, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list analyses: %w", err)
	}
	downloads, err := a.history.ListDownloads(ctx, session.Username, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list downloads: %w", err)
	}

	return analyses, downloads, nil
}

// ClearHistory removes the current user's recorded history.
func (a *AnalysisService) ClearHistory(ctx context.Context) error {
	session := a.sessions.Session()
	if err := domain.RequireSession(session); err != nil {
		return err
	}
	if a.history == nil {
		return nil
	}
	return a.history.DeleteUser(ctx, session.Username)
}
