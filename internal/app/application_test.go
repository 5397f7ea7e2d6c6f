package app

import (
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeNoiseWAV(t *testing.T, path string, sampleRate, numChannels, numFrames int) {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	dataBytes := make([]byte, numFrames*numChannels*2)
	for i := 0; i < numFrames*numChannels; i++ {
		v := int16(-4000)
		if rng.Intn(2) == 0 {
			v = 4000
		}
		binary.LittleEndian.PutUint16(dataBytes[i*2:], uint16(v))
	}

	bitsPerSample := 16
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	buf := make([]byte, 0, 44+len(dataBytes))
	buf = append(buf, "RIFF"...)
	buf = appendUint32(buf, uint32(36+len(dataBytes)))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = appendUint32(buf, 16)
	buf = appendUint16(buf, 1)
	buf = appendUint16(buf, uint16(numChannels))
	buf = appendUint32(buf, uint32(sampleRate))
	buf = appendUint32(buf, uint32(byteRate))
	buf = appendUint16(buf, uint16(blockAlign))
	buf = appendUint16(buf, uint16(bitsPerSample))
	buf = append(buf, "data"...)
	buf = appendUint32(buf, uint32(len(dataBytes)))
	buf = append(buf, dataBytes...)

	require.NoError(t, os.WriteFile(path, buf, 0644))
}

func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendUint16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func TestApplication_ProcessCapture_NoPreamble(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "noise.wav")
	writeNoiseWAV(t, capture, 48000, 2, 20000)

	cfg := DefaultConfig()
	cfg.LogDir = filepath.Join(dir, "logs")
	cfg.Capture = capture

	application := NewApplication(cfg)
	require.NoError(t, application.initializeComponents())
	defer application.rotator.Close()

	err := application.processCapture(capture)
	require.NoError(t, err)

	require.Equal(t, uint64(0), application.demodA.Frames())
	require.Equal(t, uint64(0), application.demodB.Frames())
}

func TestApplication_Run_NoCaptureConfigured(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.LogDir = filepath.Join(dir, "logs")

	application := NewApplication(cfg)
	require.NoError(t, application.initializeComponents())
	defer application.rotator.Close()

	err := application.run()
	require.Error(t, err)

	application.cancel()
	application.wg.Wait()
}
