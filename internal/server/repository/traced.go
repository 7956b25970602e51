package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-users-api/internal/shared/errors"
)

const instrumentationName = "github.com/IvanChernomyrdin/go-users-api/internal/server/repository"

// repoMetrics — инструменты метрик слоя хранилища.
type repoMetrics struct {
	calls    metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

// TracedUsersRepo оборачивает service.UsersRepo спанами и метриками OpenTelemetry.
//
// Tracer и Meter могут быть nil — тогда соответствующая часть отключена.
type TracedUsersRepo struct {
	next    service.UsersRepo
	tracer  trace.Tracer
	metrics *repoMetrics
	err     error
}

// TracingOption настраивает TracedUsersRepo.
type TracingOption func(*TracedUsersRepo)

// WithTracer задаёт tracer явно.
func WithTracer(t trace.Tracer) TracingOption {
	return func(r *TracedUsersRepo) { r.tracer = t }
}

// WithDefaultTracer берёт tracer из глобального провайдера.
func WithDefaultTracer() TracingOption {
	return func(r *TracedUsersRepo) { r.tracer = otel.Tracer(instrumentationName) }
}

// WithMeter включает метрики на переданном meter.
func WithMeter(m metric.Meter) TracingOption {
	return func(r *TracedUsersRepo) { r.metrics, r.err = newRepoMetrics(m) }
}

// WithDefaultMeter включает метрики на глобальном meter.
func WithDefaultMeter() TracingOption {
	return func(r *TracedUsersRepo) { r.metrics, r.err = newRepoMetrics(otel.Meter(instrumentationName)) }
}

// NewTracedUsersRepo создаёт обёртку над next.
// Возвращает ошибку, если meter не смог создать инструменты.
func NewTracedUsersRepo(next service.UsersRepo, opts ...TracingOption) (*TracedUsersRepo, error) {
	r := &TracedUsersRepo{next: next}
	for _, opt := range opts {
		opt(r)
	}
	if r.err != nil {
		return nil, fmt.Errorf("users repo metrics: %w", r.err)
	}
	return r, nil
}

func newRepoMetrics(m metric.Meter) (*repoMetrics, error) {
	calls, err := m.Int64Counter("users.repo.calls",
		metric.WithDescription("Total number of user repository calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}
	errs, err := m.Int64Counter("users.repo.errors",
		metric.WithDescription("Total number of failed user repository calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := m.Float64Histogram("users.repo.duration",
		metric.WithDescription("User repository call duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)
	if err != nil {
		return nil, err
	}
	return &repoMetrics{calls: calls, errors: errs, duration: duration}, nil
}

// observe запускает спан и возвращает функцию, которая его закрывает и пишет метрики.
func (r *TracedUsersRepo) observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()

	var span trace.Span
	if r.tracer != nil {
		attrs = append(attrs,
			attribute.String("db.system", "mongodb"),
			attribute.String("db.operation", op),
		)
		ctx, span = r.tracer.Start(ctx, "users."+op,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attrs...),
		)
	}

	return ctx, func(err error) {
		// "не найдено" и "уже существует" — штатные ответы, а не сбой хранилища
		failed := err != nil && errors.Is(err, serr.ErrInternal)

		if span != nil {
			if failed {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}

		if r.metrics != nil {
			mattrs := metric.WithAttributes(attribute.String("db.operation", op))
			r.metrics.calls.Add(ctx, 1, mattrs)
			r.metrics.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, mattrs)
			if failed {
				r.metrics.errors.Add(ctx, 1, mattrs)
			}
		}
	}
}

func (r *TracedUsersRepo) Create(ctx context.Context, u *models.User) (_ *models.User, err error) {
	ctx, done := r.observe(ctx, "create")
	defer func() { done(err) }()
	return r.next.Create(ctx, u)
}

func (r *TracedUsersRepo) List(ctx context.Context) (_ []models.User, err error) {
	ctx, done := r.observe(ctx, "list")
	defer func() { done(err) }()
	return r.next.List(ctx)
}

func (r *TracedUsersRepo) GetByID(ctx context.Context, id primitive.ObjectID) (_ *models.User, err error) {
	ctx, done := r.observe(ctx, "get", attribute.String("user.id", id.Hex()))
	defer func() { done(err) }()
	return r.next.GetByID(ctx, id)
}

func (r *TracedUsersRepo) Update(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (_ *models.User, err error) {
	ctx, done := r.observe(ctx, "update", attribute.String("user.id", id.Hex()))
	defer func() { done(err) }()
	return r.next.Update(ctx, id, patch)
}

func (r *TracedUsersRepo) Delete(ctx context.Context, id primitive.ObjectID) (_ *models.User, err error) {
	ctx, done := r.observe(ctx, "delete", attribute.String("user.id", id.Hex()))
	defer func() { done(err) }()
	return r.next.Delete(ctx, id)
}
