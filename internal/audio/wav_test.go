package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeaderLayout(t *testing.T) {
	pcm := make([]byte, 1000)
	for i := range pcm {
		pcm[i] = byte(i % 251)
	}

	out, err := EncodeWAV(pcm, 0, 0, 0)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	if len(out) != 44+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", 44+len(pcm), len(out))
	}

	if !bytes.Equal(out[0:4], []byte("RIFF")) {
		t.Errorf("expected RIFF marker, got %q", out[0:4])
	}
	if total := binary.LittleEndian.Uint32(out[4:8]); total != 1036 {
		t.Errorf("expected total size 1036, got %d", total)
	}
	if !bytes.Equal(out[8:12], []byte("WAVE")) {
		t.Errorf("expected WAVE marker, got %q", out[8:12])
	}
	if !bytes.Equal(out[12:16], []byte("fmt ")) {
		t.Errorf("expected fmt chunk marker, got %q", out[12:16])
	}
	if fmtLen := binary.LittleEndian.Uint32(out[16:20]); fmtLen != 16 {
		t.Errorf("expected fmt chunk length 16, got %d", fmtLen)
	}
	if format := binary.LittleEndian.Uint16(out[20:22]); format != 1 {
		t.Errorf("expected PCM format code 1, got %d", format)
	}
	if channels := binary.LittleEndian.Uint16(out[22:24]); channels != 1 {
		t.Errorf("expected 1 channel, got %d", channels)
	}
	if rate := binary.LittleEndian.Uint32(out[24:28]); rate != 24000 {
		t.Errorf("expected sample rate 24000, got %d", rate)
	}
	if byteRate := binary.LittleEndian.Uint32(out[28:32]); byteRate != 48000 {
		t.Errorf("expected byte rate 48000, got %d", byteRate)
	}
	if blockAlign := binary.LittleEndian.Uint16(out[32:34]); blockAlign != 2 {
		t.Errorf("expected block align 2, got %d", blockAlign)
	}
	if bits := binary.LittleEndian.Uint16(out[34:36]); bits != 16 {
		t.Errorf("expected 16 bits per sample, got %d", bits)
	}
	if !bytes.Equal(out[36:40], []byte("data")) {
		t.Errorf("expected data chunk marker, got %q", out[36:40])
	}
	if dataLen := binary.LittleEndian.Uint32(out[40:44]); dataLen != 1000 {
		t.Errorf("expected data length 1000, got %d", dataLen)
	}
	if !bytes.Equal(out[44:], pcm) {
		t.Error("payload bytes were altered")
	}
}

func TestEncodeWAVEmptyPayload(t *testing.T) {
	out, err := EncodeWAV(nil, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}
	if len(out) != 44 {
		t.Fatalf("expected bare 44-byte header, got %d bytes", len(out))
	}
	if total := binary.LittleEndian.Uint32(out[4:8]); total != 36 {
		t.Errorf("expected total size 36, got %d", total)
	}
	if dataLen := binary.LittleEndian.Uint32(out[40:44]); dataLen != 0 {
		t.Errorf("expected data length 0, got %d", dataLen)
	}
}

func TestEncodeWAVCustomParameters(t *testing.T) {
	out, err := EncodeWAV(make([]byte, 8), 44100, 2, 16)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}
	if rate := binary.LittleEndian.Uint32(out[24:28]); rate != 44100 {
		t.Errorf("expected sample rate 44100, got %d", rate)
	}
	if channels := binary.LittleEndian.Uint16(out[22:24]); channels != 2 {
		t.Errorf("expected 2 channels, got %d", channels)
	}
	if byteRate := binary.LittleEndian.Uint32(out[28:32]); byteRate != 176400 {
		t.Errorf("expected byte rate 176400, got %d", byteRate)
	}
	if blockAlign := binary.LittleEndian.Uint16(out[32:34]); blockAlign != 4 {
		t.Errorf("expected block align 4, got %d", blockAlign)
	}
}
