package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Cue is a short sound the workout plays.
type Cue int

const (
	CueWarning Cue = iota
	CueBuzzer
	CueSuccess
)

// SampleRate of rendered cues.
const SampleRate = 22050

const (
	channels  = 1
	bitDepth  = 16
	pcmFormat = 1
)

const (
	startGain = 0.5
	endGain   = 0.01
)

func (cue Cue) String() string {
	switch cue {
	case CueWarning:
		return "warning"
	case CueBuzzer:
		return "buzzer"
	case CueSuccess:
		return "success"
	default:
		return fmt.Sprintf("cue(%d)", int(cue))
	}
}

type waveform int

const (
	waveSine waveform = iota
	waveSquare
)

type tone struct {
	offset    time.Duration
	duration  time.Duration
	frequency float64
	wave      waveform
}

func cueTones(cue Cue) []tone {
	switch cue {
	case CueWarning:
		return []tone{{duration: 150 * time.Millisecond, frequency: 880, wave: waveSine}}
	case CueBuzzer:
		return []tone{
			{duration: 300 * time.Millisecond, frequency: 440, wave: waveSquare},
			{offset: 150 * time.Millisecond, duration: 300 * time.Millisecond, frequency: 440, wave: waveSquare},
		}
	case CueSuccess:
		return []tone{
			{duration: 150 * time.Millisecond, frequency: 523, wave: waveSine},
			{offset: 150 * time.Millisecond, duration: 150 * time.Millisecond, frequency: 659, wave: waveSine},
			{offset: 300 * time.Millisecond, duration: 300 * time.Millisecond, frequency: 784, wave: waveSine},
		}
	default:
		return nil
	}
}

// Render synthesises cue as a 16-bit mono PCM WAV file.
func Render(cue Cue) ([]byte, error) {
	tones := cueTones(cue)
	if len(tones) == 0 {
		return nil, fmt.Errorf("render %s: unknown cue", cue)
	}

	var length time.Duration
	for _, t := range tones {
		if end := t.offset + t.duration; end > length {
			length = end
		}
	}
	samples := make([]float64, sampleCount(length))
	for _, t := range tones {
		mixTone(samples, t)
	}

	pcm := make([]int16, len(samples))
	for index, value := range samples {
		value = math.Max(-1, math.Min(1, value))
		pcm[index] = int16(value * math.MaxInt16)
	}
	return encodeWAV(pcm)
}

func sampleCount(length time.Duration) int {
	return int(length.Seconds() * SampleRate)
}

// mixTone adds t with an exponential decay from startGain to endGain.
func mixTone(samples []float64, t tone) {
	start := sampleCount(t.offset)
	count := sampleCount(t.duration)
	seconds := t.duration.Seconds()
	for i := 0; i < count && start+i < len(samples); i++ {
		at := float64(i) / SampleRate
		gain := startGain * math.Pow(endGain/startGain, at/seconds)
		phase := 2 * math.Pi * t.frequency * at
		value := math.Sin(phase)
		if t.wave == waveSquare {
			if value >= 0 {
				value = 1
			} else {
				value = -1
			}
		}
		samples[start+i] += value * gain
	}
}

func encodeWAV(pcm []int16) ([]byte, error) {
	data := make([]int, len(pcm))
	for index, sample := range pcm {
		data[index] = int(sample)
	}
	buffer := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	output := &seekBuffer{}
	encoder := wav.NewEncoder(output, SampleRate, bitDepth, channels, pcmFormat)
	if err := encoder.Write(buffer); err != nil {
		return nil, fmt.Errorf("encode wav samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("finish wav: %w", err)
	}
	return output.data, nil
}

// seekBuffer is an in-memory io.WriteSeeker; the encoder seeks back to
// patch chunk sizes once all samples are written.
type seekBuffer struct {
	data []byte
	pos  int
}

func (buffer *seekBuffer) Write(p []byte) (int, error) {
	end := buffer.pos + len(p)
	if end > len(buffer.data) {
		buffer.data = append(buffer.data, make([]byte, end-len(buffer.data))...)
	}
	copy(buffer.data[buffer.pos:], p)
	buffer.pos = end
	return len(p), nil
}

func (buffer *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(buffer.pos)
	case io.SeekEnd:
		base = int64(len(buffer.data))
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	next := base + offset
	if next < 0 {
		return 0, fmt.Errorf("seek: negative position %d", next)
	}
	buffer.pos = int(next)
	return next, nil
}
