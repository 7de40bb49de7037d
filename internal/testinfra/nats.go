// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultNATSImage = "nats:2.12-alpine"
	natsClientPort   = "4222/tcp"
)

// NATSContainer is a running nats-server with JetStream enabled.
type NATSContainer struct {
	testcontainers.Container
	URL string
}

type natsOptions struct {
	image        string
	startTimeout time.Duration
}

// NATSOption customizes NewNATSContainer.
type NATSOption func(*natsOptions)

// WithNATSImage overrides the server image.
func WithNATSImage(image string) NATSOption {
	return func(o *natsOptions) { o.image = image }
}

// NewNATSContainer starts nats-server with -js and waits for the client port.
func NewNATSContainer(ctx context.Context, opts ...NATSOption) (*NATSContainer, error) {
	o := &natsOptions{image: DefaultNATSImage, startTimeout: 60 * time.Second}
	for _, opt := range opts {
		opt(o)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        o.image,
			ExposedPorts: []string{natsClientPort},
			Cmd:          []string{"-js", "-sd", "/data"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(natsClientPort),
				wait.ForLog("Server is ready"),
			).WithStartupTimeout(o.startTimeout),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create nats container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, natsClientPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &NATSContainer{
		Container: container,
		URL:       fmt.Sprintf("nats://%s:%s", host, port.Port()),
	}, nil
}
