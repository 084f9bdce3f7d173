/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package node assembles the cache, the observer and the batch writer of a Sidetree node.
package node

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/cas"
	"github.com/trustbloc/sidetree-didcache-go/pkg/batch"
	"github.com/trustbloc/sidetree-didcache-go/pkg/batch/filehandler"
	"github.com/trustbloc/sidetree-didcache-go/pkg/batch/opqueue"
	"github.com/trustbloc/sidetree-didcache-go/pkg/compression"
	"github.com/trustbloc/sidetree-didcache-go/pkg/config"
	"github.com/trustbloc/sidetree-didcache-go/pkg/didcache"
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
	"github.com/trustbloc/sidetree-didcache-go/pkg/metrics"
	"github.com/trustbloc/sidetree-didcache-go/pkg/observer"
	"github.com/trustbloc/sidetree-didcache-go/pkg/protocol/selector"
)

var logger = log.New("sidetree-node")

// Ledger is the anchoring system: it delivers transaction notifications and accepts anchors.
type Ledger interface {
	observer.Ledger
	batch.AnchorWriter
}

// Providers contains the external systems used by the node.
type Providers struct {
	Ledger     Ledger
	CASClient  cas.Client
	Registerer prometheus.Registerer
}

// Node holds the assembled components.
type Node struct {
	Protocol *selector.Selector
	Cache    *didcache.Cache
	Observer *observer.Observer
	Writer   *batch.Writer
}

// New creates a node from the configuration. Protocol versions are loaded from the configured
// protocol file.
func New(cfg *config.Config, providers *Providers) (*Node, error) {
	namespace := cfg.Get(config.DIDNamespace)
	if namespace == "" {
		return nil, errors.Errorf("%s is required", config.DIDNamespace)
	}

	batchInterval, err := cfg.BatchInterval()
	if err != nil {
		return nil, err
	}

	cacheSize, err := cfg.DocumentCacheSize()
	if err != nil {
		return nil, err
	}

	protocolClient, err := selector.NewFromFile(cfg.Get(config.ProtocolFile))
	if err != nil {
		return nil, errors.WithMessage(err, "load protocol versions")
	}

	metricsProvider, err := metrics.New(providers.Registerer)
	if err != nil {
		return nil, err
	}

	batchFiles := filehandler.New(compression.New(compression.WithDefaultAlgorithms()))

	cache, err := didcache.New(namespace,
		didcache.WithDocumentCacheSize(cacheSize),
		didcache.WithMetrics(metricsProvider),
	)
	if err != nil {
		return nil, err
	}

	o := observer.New(&observer.Providers{
		Ledger:         providers.Ledger,
		ProtocolClient: protocolClient,
		CASClient:      providers.CASClient,
		BatchFiles:     batchFiles,
		Cache:          cache,
		Metrics:        metricsProvider,
	})

	w := batch.New(&batch.Providers{
		ProtocolClient: protocolClient,
		CASClient:      providers.CASClient,
		AnchorWriter:   providers.Ledger,
		OperationQueue: &opqueue.MemQueue{},
		BatchFiles:     batchFiles,
		Metrics:        metricsProvider,
	}, batch.WithBatchTimeout(batchInterval))

	logger.Infof("Created node for namespace [%s] with %d protocol versions", namespace, len(protocolClient.Versions()))

	return &Node{
		Protocol: protocolClient,
		Cache:    cache,
		Observer: o,
		Writer:   w,
	}, nil
}

// Start starts the observer and the batch writer.
func (n *Node) Start() {
	n.Observer.Start()
	n.Writer.Start()
}

// Stop stops the batch writer and the observer.
func (n *Node) Stop() {
	n.Writer.Stop()
	n.Observer.Stop()
}
