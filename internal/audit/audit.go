// Package audit logs the lifecycle of a job run, the way the source's
// LogServiceJob/LogParameterSet send a ServiceJob's state (and the
// ParameterSet it ran with) to whatever external auditing environment a
// deployment is configured to use. Here that sink is structured log
// output via zap rather than a configurable remote logging URI, but the
// call sites — log a job's state, log the parameters it ran with — are
// the same two operations.
package audit

import (
	"go.uber.org/zap"

	"taskplatform/internal/param"
)

// Logger records job lifecycle events.
type Logger interface {
	// LogJobState records a job's current status.
	LogJobState(jobID, name, status string)
	// LogParameterSet records the parameters a job ran with.
	LogParameterSet(jobID string, params *param.Set)
	// LogJobError records that a job failed, with the error that caused it.
	LogJobError(jobID, name string, err error)
}

// ZapLogger is a Logger backed by a *zap.Logger.
type ZapLogger struct {
	log *zap.Logger
}

// NewZapLogger wraps log. A nil log is replaced with zap.NewNop.
func NewZapLogger(log *zap.Logger) *ZapLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapLogger{log: log.Named("audit")}
}

// LogJobState implements Logger.
func (z *ZapLogger) LogJobState(jobID, name, status string) {
	z.log.Info("job state",
		zap.String("job_id", jobID),
		zap.String("job_name", name),
		zap.String("status", status),
	)
}

// LogParameterSet implements Logger.
func (z *ZapLogger) LogParameterSet(jobID string, params *param.Set) {
	fields := []zap.Field{zap.String("job_id", jobID)}
	for _, p := range params.Parameters {
		fields = append(fields, zap.Any("param."+p.Name, p.Value))
	}
	for _, g := range params.Groups {
		for _, p := range g.Parameters {
			fields = append(fields, zap.Any("param."+g.Name+"."+p.Name, p.Value))
		}
	}
	z.log.Info("job parameters", fields...)
}

// LogJobError implements Logger.
func (z *ZapLogger) LogJobError(jobID, name string, err error) {
	z.log.Error("job failed",
		zap.String("job_id", jobID),
		zap.String("job_name", name),
		zap.Error(err),
	)
}
