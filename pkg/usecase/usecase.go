package usecase

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/model/config"
	"github.com/secmon-lab/aegis/pkg/utils/async"
)

// DefaultSessionTTL is how long a login stays valid
const DefaultSessionTTL = 12 * time.Hour

type UseCases struct {
	repo       interfaces.Repository
	notifiers  []interfaces.Notifier
	storage    interfaces.ObjectStorage
	renderer   interfaces.ReportRenderer
	dispatch   async.Dispatcher
	company    config.Company
	thresholds config.Thresholds
	sessionTTL time.Duration
	now        func() time.Time

	Risk       *RiskUseCase
	Incident   *IncidentUseCase
	Training   *TrainingUseCase
	Inspection *InspectionUseCase
	EPP        *EPPUseCase
	Document   *DocumentUseCase
	Auth       *AuthUseCase
	Report     *ReportUseCase
	Alert      *AlertUseCase
}

type Option func(*UseCases)

// WithNotifier adds notification channels. Every event goes to all of them.
func WithNotifier(notifiers ...interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifiers = append(uc.notifiers, notifiers...)
	}
}

func WithStorage(storage interfaces.ObjectStorage) Option {
	return func(uc *UseCases) {
		uc.storage = storage
	}
}

func WithRenderer(renderer interfaces.ReportRenderer) Option {
	return func(uc *UseCases) {
		uc.renderer = renderer
	}
}

// WithDispatcher replaces the runner of fire-and-forget notifications.
// Tests pass async.Inline to make delivery synchronous.
func WithDispatcher(d async.Dispatcher) Option {
	return func(uc *UseCases) {
		uc.dispatch = d
	}
}

func WithCompany(company config.Company) Option {
	return func(uc *UseCases) {
		uc.company = company
	}
}

func WithThresholds(t config.Thresholds) Option {
	return func(uc *UseCases) {
		uc.thresholds = t
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.sessionTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:       repo,
		dispatch:   async.Dispatch,
		thresholds: config.DefaultThresholds(),
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	b := &base{
		repo:       uc.repo,
		notify:     &notifier{senders: uc.notifiers, dispatch: uc.dispatch},
		storage:    uc.storage,
		renderer:   uc.renderer,
		company:    uc.company,
		thresholds: uc.thresholds,
		validator:  model.NewRecordValidator(),
		now:        func() time.Time { return uc.now().UTC() },
	}

	uc.Risk = &RiskUseCase{base: b}
	uc.Incident = &IncidentUseCase{base: b}
	uc.Training = &TrainingUseCase{base: b}
	uc.Inspection = &InspectionUseCase{base: b}
	uc.EPP = &EPPUseCase{base: b}
	uc.Document = &DocumentUseCase{base: b}
	uc.Auth = &AuthUseCase{base: b, sessionTTL: uc.sessionTTL, cache: newSessionCache()}
	uc.Report = &ReportUseCase{base: b}
	uc.Alert = &AlertUseCase{base: b}

	return uc
}

// Thresholds returns the effective report and alert settings
func (uc *UseCases) Thresholds() config.Thresholds {
	return uc.thresholds
}

// base holds the collaborators shared by every use case
type base struct {
	repo       interfaces.Repository
	notify     *notifier
	storage    interfaces.ObjectStorage
	renderer   interfaces.ReportRenderer
	company    config.Company
	thresholds config.Thresholds
	validator  *model.RecordValidator
	now        func() time.Time
}

// Created is a persisted record plus the non-fatal problems met on the way,
// such as an evidence upload that failed.
type Created[T any] struct {
	Record   *T
	Warnings []string
}

func (c *Created[T]) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}
