// Package mocks provides hand-rolled mock implementations of the ports
// interfaces for use in tests.
package mocks

import "github.com/user/vidsink/pkg/ports"

// DecisionCall records one query to the mock oracle.
type DecisionCall struct {
	BufferTimestampUs    int64
	PositionUs           int64
	ElapsedRealtimeUs    int64
	OutputStreamOffsetUs int64
	IsLastFrame          bool
}

// ReleaseOracle is a mock implementation of ports.ReleaseOracle.
type ReleaseOracle struct {
	FrameReleaseActionFunc func(bufferTimestampUs, positionUs, elapsedRealtimeUs, outputStreamOffsetUs int64, isLastFrame bool) ports.Decision

	// Recorded calls for verification
	Calls           []DecisionCall
	ResetCalls      int
	Discontinuities int
}

func (m *ReleaseOracle) FrameReleaseAction(bufferTimestampUs, positionUs, elapsedRealtimeUs, outputStreamOffsetUs int64, isLastFrame bool) ports.Decision {
	m.Calls = append(m.Calls, DecisionCall{
		BufferTimestampUs:    bufferTimestampUs,
		PositionUs:           positionUs,
		ElapsedRealtimeUs:    elapsedRealtimeUs,
		OutputStreamOffsetUs: outputStreamOffsetUs,
		IsLastFrame:          isLastFrame,
	})
	if m.FrameReleaseActionFunc != nil {
		return m.FrameReleaseActionFunc(bufferTimestampUs, positionUs, elapsedRealtimeUs, outputStreamOffsetUs, isLastFrame)
	}
	return ports.Decision{Action: ports.ActionReleaseImmediately}
}

func (m *ReleaseOracle) Reset() {
	m.ResetCalls++
}

func (m *ReleaseOracle) NotifyStreamDiscontinuity() {
	m.Discontinuities++
}

var _ ports.ReleaseOracle = (*ReleaseOracle)(nil)
