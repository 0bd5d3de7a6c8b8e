package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType identifies a sound effect.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays short synthesized effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager synthesizes every effect up front.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		enabled: enabled,
		volume:  0.5,
	}
	click := func(t, freq float64) float64 {
		noise := (math.Sin(t*sampleRate*0.3) + math.Sin(t*sampleRate*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * math.Exp(-t*30)
	}
	am.sounds = map[SoundType][]byte{
		SoundMove:    synth(0.08, 0.3, func(t, _ float64) float64 { return click(t, 440) }),
		SoundCapture: synth(0.12, 0.5, func(t, _ float64) float64 { return click(t, 330) }),
		SoundCheck: synth(0.15, 0.4, func(t, p float64) float64 {
			return math.Sin(2*math.Pi*880*t) * attackDecay(p, 0.1)
		}),
		SoundCastle: synth(0.17, 0.3, func(t, _ float64) float64 {
			if t < 0.11 {
				return click(t, 400)
			}
			return 0.8 * click(t-0.11, 440)
		}),
		SoundInvalid: synth(0.1, 0.15, func(t, p float64) float64 {
			return (math.Sin(2*math.Pi*150*t) + 0.3*math.Sin(4*math.Pi*150*t)) * (1 - p)
		}),
		SoundGameEnd: synth(0.4, 0.5, func(t, p float64) float64 {
			chord := math.Sin(2*math.Pi*261.63*t) + math.Sin(2*math.Pi*329.63*t) + math.Sin(2*math.Pi*392*t)
			env := 1.0
			switch {
			case p < 0.1:
				env = p / 0.1
			case p > 0.7:
				env = (1 - p) / 0.3
			}
			return chord / 3 * env
		}),
	}
	return am
}

func attackDecay(p, attack float64) float64 {
	if p < attack {
		return p / attack
	}
	return 1 - (p-attack)/(1-attack)
}

// synth renders wave(t, progress) as 16-bit little-endian stereo PCM.
func synth(duration, amplitude float64, wave func(t, progress float64) float64) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		v := wave(t, t/duration) * amplitude
		v = max(-1, min(1, v))
		val := int16(v * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

// Play starts sound. Overlapping calls mix.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled turns sound on or off.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled reports whether sound is on.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
