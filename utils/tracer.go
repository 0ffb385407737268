package utils

import (
	"github.com/featherdev/chirp/utils/dotenv"
	"github.com/featherdev/chirp/utils/flag"
	Logger "github.com/featherdev/chirp/utils/log"
	"github.com/sirupsen/logrus"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// InitTracer starts the Datadog tracer. Call once from main.
func InitTracer() {
	env := "development"
	if dotenv.RuntimeEnv() == dotenv.ProdEnv {
		env = "production"
	}

	tracer.Start(
		tracer.WithService(flag.ServiceName),
		tracer.WithEnv(env),
	)

	Logger.Log.WithFields(
		logrus.Fields{"service": flag.ServiceName, "env": env},
	).Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}
