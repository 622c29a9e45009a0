package database

import (
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	spanKey  = "otel:span"
	startKey = "otel:start_time"
)

// TracingPlugin 为 GORM 的增删改查回调创建 client span
type TracingPlugin struct {
	tracer       trace.Tracer
	system       attribute.KeyValue
	maxSQLLength int
}

// NewTracingPlugin dialect 取 gorm Dialector.Name()，用于区分 sqlite / postgres
func NewTracingPlugin(serviceName, dialect string) *TracingPlugin {
	if serviceName == "" {
		serviceName = "focusdesk"
	}

	system := semconv.DBSystemSqlite
	if dialect == "postgres" {
		system = semconv.DBSystemPostgreSQL
	}

	return &TracingPlugin{
		tracer:       otel.Tracer(serviceName + ".gorm"),
		system:       system,
		maxSQLLength: 500,
	}
}

func (p *TracingPlugin) Name() string {
	return "otel_tracing"
}

func (p *TracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after)
}

func (p *TracingPlugin) before(db *gorm.DB) {
	ctx, span := p.tracer.Start(db.Statement.Context, "db."+tableOf(db),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(p.system),
	)

	db.InstanceSet(startKey, time.Now())
	db.InstanceSet(spanKey, span)
	db.Statement.Context = ctx
}

func (p *TracingPlugin) after(db *gorm.DB) {
	v, ok := db.InstanceGet(spanKey)
	if !ok {
		return
	}
	span, ok := v.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	sql := db.Statement.SQL.String()
	if len(sql) > p.maxSQLLength {
		sql = sql[:p.maxSQLLength] + "..."
	}
	span.SetAttributes(
		semconv.DBStatement(sql),
		semconv.DBOperation(operationOf(sql)),
		attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
	)
	if start, ok := db.InstanceGet(startKey); ok {
		if t, ok := start.(time.Time); ok {
			span.SetAttributes(attribute.Float64("db.duration_seconds", time.Since(t).Seconds()))
		}
	}

	// 记录不存在不算失败
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
		return
	}
	span.SetStatus(codes.Ok, "")
}

func tableOf(db *gorm.DB) string {
	if db.Statement.Table == "" {
		return "unknown"
	}
	return db.Statement.Table
}

func operationOf(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
