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
	SoundCastle
	SoundPromote
	SoundInvalid
	SoundCancel
)

const sampleRate = 44100

// AudioManager plays procedurally generated effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates the audio context and renders every effect.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: enabled,
		volume:  0.5,
	}
	am.sounds[SoundMove] = click(440, 0.08, 0.3)
	am.sounds[SoundCapture] = click(330, 0.12, 0.5)
	am.sounds[SoundCastle] = concat(click(400, 0.06, 0.3), silence(0.05), click(440, 0.06, 0.24))
	am.sounds[SoundPromote] = arpeggio([]float64{392.00, 493.88, 587.33}, 0.07, 0.35)
	am.sounds[SoundInvalid] = buzz(150, 0.1, 0.3)
	am.sounds[SoundCancel] = tone(300, 0.08, 0.2)
	return am
}

// pcm renders a mono signal into 16-bit little-endian stereo frames.
func pcm(duration float64, sample func(t, progress float64) float64) []byte {
	n := int(sampleRate * duration)
	data := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		v := int16(math.Max(-1, math.Min(1, sample(t, t/duration))) * 32767)
		data[i*4] = byte(v)
		data[i*4+1] = byte(v >> 8)
		data[i*4+2] = byte(v)
		data[i*4+3] = byte(v >> 8)
	}
	return data
}

// click is a short percussive knock, wood on wood.
func click(freq, duration, amplitude float64) []byte {
	return pcm(duration, func(t, _ float64) float64 {
		noise := (math.Sin(t*sampleRate*0.3) + math.Sin(t*sampleRate*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * math.Exp(-t*30) * amplitude
	})
}

func tone(freq, duration, amplitude float64) []byte {
	return pcm(duration, func(t, progress float64) float64 {
		env := 1 - (progress-0.1)/0.9
		if progress < 0.1 {
			env = progress / 0.1
		}
		return math.Sin(2*math.Pi*freq*t) * env * amplitude
	})
}

func buzz(freq, duration, amplitude float64) []byte {
	return pcm(duration, func(t, progress float64) float64 {
		wave := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return wave * (1 - progress) * amplitude * 0.5
	})
}

// arpeggio plays freqs one after another, each for step seconds.
func arpeggio(freqs []float64, step, amplitude float64) []byte {
	parts := make([][]byte, len(freqs))
	for i, f := range freqs {
		parts[i] = tone(f, step, amplitude)
	}
	return concat(parts...)
}

func silence(duration float64) []byte {
	return make([]byte, int(sampleRate*duration)*4)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Play starts an effect. Players are not reused so effects can overlap.
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

// IsEnabled returns whether sound is on.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
