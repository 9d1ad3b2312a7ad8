package music

import "errors"

var (
	ErrNotPlaying       = errors.New("no track is playing")
	ErrNotPaused        = errors.New("no track is paused")
	ErrNothingPlaying   = errors.New("nothing is playing or paused")
	ErrNotInVoice       = errors.New("user is not in a voice channel")
	ErrNotConnected     = errors.New("not connected to a voice channel")
	ErrAlreadyConnected = errors.New("already connected to that voice channel")
	ErrResolve          = errors.New("failed to resolve track")
	ErrEmptyQuery       = errors.New("empty query")
)
