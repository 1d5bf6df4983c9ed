package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	chimeFreq  = 880
	chimeTime  = 80 * time.Millisecond
)

// chime plays a short tone when an answer lands on the board. A failed audio
// init leaves it silent.
type chime struct {
	enabled bool
}

func newChime() (*chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &chime{}, err
	}

	return &chime{enabled: true}, nil
}

func (that *chime) play() {
	if that == nil || !that.enabled {
		return
	}

	sine, err := generators.SineTone(sampleRate, chimeFreq)
	if err != nil {
		return
	}

	speaker.Play(beep.Take(sampleRate.N(chimeTime), sine))
}
