package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrAudioUnsupported indicates no system sound player was found.
var ErrAudioUnsupported = errors.New("audio playback unsupported")

// Player plays cues without blocking the caller.
type Player interface {
	Play(cue Cue) error
	Close() error
}

type playerCommand struct {
	name string
	args []string
}

// Players are tried in order; each accepts a WAV file path as last argument.
var playerCommands = []playerCommand{
	{name: "paplay"},
	{name: "aplay", args: []string{"-q"}},
	{name: "afplay"},
}

type commandPlayer struct {
	path  string
	args  []string
	dir   string
	files map[Cue]string
}

type unsupportedPlayer struct{}

// NewPlayer renders every cue to a temporary directory and returns a player
// backed by the first system sound command found on PATH.
func NewPlayer() (Player, error) {
	path, args, err := lookupPlayer()
	if err != nil {
		return unsupportedPlayer{}, err
	}

	dir, err := os.MkdirTemp("", "holdfast-cues-")
	if err != nil {
		return unsupportedPlayer{}, fmt.Errorf("create cue dir: %w", err)
	}
	player := &commandPlayer{path: path, args: args, dir: dir, files: map[Cue]string{}}
	for _, cue := range []Cue{CueWarning, CueBuzzer, CueSuccess} {
		data, err := Render(cue)
		if err != nil {
			_ = player.Close()
			return unsupportedPlayer{}, err
		}
		file := filepath.Join(dir, cue.String()+".wav")
		if err := os.WriteFile(file, data, 0o600); err != nil {
			_ = player.Close()
			return unsupportedPlayer{}, fmt.Errorf("write cue %s: %w", cue, err)
		}
		player.files[cue] = file
	}
	return player, nil
}

func lookupPlayer() (string, []string, error) {
	for _, candidate := range playerCommands {
		if path, err := exec.LookPath(candidate.name); err == nil {
			return path, candidate.args, nil
		}
	}
	return "", nil, ErrAudioUnsupported
}

func (player *commandPlayer) Play(cue Cue) error {
	file, ok := player.files[cue]
	if !ok {
		return fmt.Errorf("play %s: unknown cue", cue)
	}
	args := append(append([]string(nil), player.args...), file)
	cmd := exec.Command(player.path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("play %s: %w", cue, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (player *commandPlayer) Close() error {
	if player.dir == "" {
		return nil
	}
	return os.RemoveAll(player.dir)
}

func (unsupportedPlayer) Play(Cue) error { return nil }

func (unsupportedPlayer) Close() error { return nil }
