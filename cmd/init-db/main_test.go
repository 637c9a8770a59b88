package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/undy45/medicine-initdb/app/initdb"
	"github.com/undy45/medicine-initdb/core/logger"
)

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{"--help"}, &out))
	assert.Contains(t, out.String(), "--env-file")
	assert.Contains(t, out.String(), "--strict")
}

func TestRun_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run([]string{"--nope"}, &out))
}

func TestRun_InvalidConfiguration(t *testing.T) {
	t.Setenv("MEDICINE_API_MONGODB_HOST", "mongo")
	t.Setenv("MEDICINE_API_MONGODB_PORT", "27017")
	t.Setenv("MEDICINE_API_MONGODB_USERNAME", "root")
	t.Setenv("MEDICINE_API_MONGODB_PASSWORD", "secret")
	t.Setenv("MEDICINE_API_MONGODB_DATABASE", "ee-medicine")
	t.Setenv("MEDICINE_API_MONGODB_COLLECTION", initdb.StatusCollection)

	var out bytes.Buffer
	assert.Equal(t, 1, run(nil, &out))
	assert.Contains(t, out.String(), "Invalid configuration")
	assert.Contains(t, out.String(), initdb.ErrCollectionConflict.Error())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	log := logger.New(logger.WithOutput(&bytes.Buffer{}))
	failed := initdb.Result{Collections: []initdb.CollectionResult{
		{Name: "ambulance", Err: errors.Join(initdb.ErrSeedFailed, errors.New("duplicate key"))},
	}}

	ctx := context.Background()

	assert.Equal(t, 0, exitCode(ctx, initdb.Result{}, false, log))
	assert.Equal(t, 0, exitCode(ctx, initdb.Result{AlreadyInitialized: true}, true, log))
	assert.Equal(t, 0, exitCode(ctx, failed, false, log))
	assert.Equal(t, 1, exitCode(ctx, failed, true, log))
}

func TestExitCode_InterruptedBySignal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	interrupted := initdb.Result{Collections: []initdb.CollectionResult{
		{Name: "ambulance", Created: true, Err: errors.Join(initdb.ErrSeedFailed, context.Canceled)},
	}}

	assert.Equal(t, 1, exitCode(ctx, interrupted, false, log))
	assert.Equal(t, 1, exitCode(ctx, initdb.Result{}, false, log))
	assert.Contains(t, buf.String(), "Initialization interrupted")
}
