package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/goto/optimus-apitoken/internal/config"
	"github.com/goto/optimus-apitoken/internal/helper"
	"github.com/goto/optimus-apitoken/internal/logger"
	"github.com/goto/optimus-apitoken/internal/otel"
	"github.com/pkg/errors"
)

// Op is an operation of the data set contract.
type Op string

const (
	OpLoad     Op = "load"
	OpExists   Op = "exists"
	OpDescribe Op = "describe"
	OpSave     Op = "save"
)

// run builds the data set from envs, executes op and writes the result to w.
func run(op Op, envs []string, w io.Writer) error {
	// load config
	cfg, err := config.NewConfig(envs...)
	if err != nil {
		return errors.WithStack(err)
	}

	// set up logger
	l, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return errors.WithStack(err)
	}

	// graceful shutdown
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelFn()

	// metrics are only exported when a collector is configured
	if cfg.OtelCollectorGRPCEndpoint != "" {
		l.Debug(fmt.Sprintf("set otel sdk: %s", cfg.OtelCollectorGRPCEndpoint))
		shutdownFunc, err := otel.SetupOTelSDK(ctx, cfg.OtelCollectorGRPCEndpoint, otel.ParseAttributes(cfg.OtelAttributes))
		if err != nil {
			l.Error(fmt.Sprintf("set otel sdk error: %s", err.Error()))
		} else {
			defer func() {
				if err := shutdownFunc(); err != nil {
					l.Error(fmt.Sprintf("otel sdk shutdown error: %s", err.Error()))
				}
			}()
		}
	}

	// create data set
	sourceCfg, err := config.SourceAPIToken(envs...)
	if err != nil {
		return errors.WithStack(err)
	}
	ds, err := getDataSet(l, sourceCfg, config.Environ(envs...))
	if err != nil {
		return errors.WithStack(err)
	}

	switch op {
	case OpLoad:
		resp, err := ds.Load(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		l.Info(fmt.Sprintf("loaded %d bytes, status: %s", len(resp.Body), resp.Status))
		out, err := helper.ExtractJSONPath(resp.Body, sourceCfg.OutputJSONPath)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = fmt.Fprintf(w, "%s\n", out)
		return errors.WithStack(err)
	case OpExists:
		ok, err := ds.Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = fmt.Fprintln(w, ok)
		return errors.WithStack(err)
	case OpDescribe:
		raw, err := json.Marshal(ds.Describe())
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = fmt.Fprintf(w, "%s\n", raw)
		return errors.WithStack(err)
	case OpSave:
		return errors.WithStack(ds.Save(ctx, nil))
	}
	return errors.Errorf("unknown operation: %s", op)
}
