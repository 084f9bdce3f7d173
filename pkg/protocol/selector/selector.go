/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package selector

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/trustbloc/sidetree-didcache-go/pkg/api/protocol"
	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
)

var logger = log.New("sidetree-protocol")

// ErrProtocolNotFound is returned when no protocol version applies to the requested block number.
var ErrProtocolNotFound = errors.New("protocol parameters are not defined for block number")

// Selector selects the protocol parameters in force at a block number. The version table is
// fixed at construction.
type Selector struct {
	versions []protocol.Protocol
}

// New returns a selector for the given protocol versions. At least one version is required.
func New(versions ...protocol.Protocol) (*Selector, error) {
	if len(versions) == 0 {
		return nil, errors.New("at least one protocol version is required")
	}

	sorted := make([]protocol.Protocol, len(versions))
	copy(sorted, versions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartingBlockNumber > sorted[j].StartingBlockNumber
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartingBlockNumber == sorted[i-1].StartingBlockNumber {
			return nil, errors.Errorf("duplicate protocol version for starting block number %d",
				sorted[i].StartingBlockNumber)
		}
	}

	logger.Debug("Loaded protocol versions", log.WithTotal(len(sorted)))

	return &Selector{versions: sorted}, nil
}

// NewFromFile loads protocol versions from a JSON file of the form {"<version>": {protocol}, ...}.
func NewFromFile(path string) (*Selector, error) {
	content, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, errors.Wrapf(err, "read protocol file [%s]", path)
	}

	versions := make(map[string]protocol.Protocol)

	if err := json.Unmarshal(content, &versions); err != nil {
		return nil, errors.Wrapf(err, "unmarshal protocol file [%s]", path)
	}

	list := make([]protocol.Protocol, 0, len(versions))
	for _, p := range versions {
		list = append(list, p)
	}

	return New(list...)
}

// Current returns the newest protocol version.
func (s *Selector) Current() protocol.Protocol {
	return s.versions[0]
}

// Get returns the protocol version in force at the given block number: the first version,
// in descending order of starting block number, whose starting block number is <= blockNumber.
func (s *Selector) Get(blockNumber uint64) (protocol.Protocol, error) {
	for _, p := range s.versions {
		if p.StartingBlockNumber <= blockNumber {
			return p, nil
		}
	}

	return protocol.Protocol{}, errors.Wrapf(ErrProtocolNotFound, "block number %d", blockNumber)
}

// Versions returns the protocol versions in descending order of starting block number.
func (s *Selector) Versions() []protocol.Protocol {
	versions := make([]protocol.Protocol, len(s.versions))
	copy(versions, s.versions)

	return versions
}
