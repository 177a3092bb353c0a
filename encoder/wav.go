package encoder

import (
	"bytes"
	"encoding/binary"
)

const wavHeaderSize = 44

// WavEncoder wraps raw PCM in a RIFF header. Used as the fallback for
// engines that reject FLAC uploads.
type WavEncoder struct {
	buf         bytes.Buffer
	totalFrames uint64
}

func NewWav() (Encoder, error) {
	e := &WavEncoder{}
	e.buf.Write(make([]byte, wavHeaderSize)) // patched in Close
	return e, nil
}

func (e *WavEncoder) EncodeBlock(block []int16) error {
	data := make([]byte, len(block)*2)
	for i, s := range block {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	e.buf.Write(data)
	e.totalFrames += uint64(len(block))
	return nil
}

func (e *WavEncoder) Close() error {
	b := e.buf.Bytes()
	dataSize := len(b) - wavHeaderSize

	copy(b[0:4], "RIFF")
	binary.LittleEndian.PutUint32(b[4:8], uint32(wavHeaderSize-8+dataSize))
	copy(b[8:12], "WAVE")
	copy(b[12:16], "fmt ")
	binary.LittleEndian.PutUint32(b[16:20], 16)
	binary.LittleEndian.PutUint16(b[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(b[22:24], Channels)
	binary.LittleEndian.PutUint32(b[24:28], SampleRate)
	binary.LittleEndian.PutUint32(b[28:32], SampleRate*Channels*BitsPerSample/8)
	binary.LittleEndian.PutUint16(b[32:34], Channels*BitsPerSample/8)
	binary.LittleEndian.PutUint16(b[34:36], BitsPerSample)
	copy(b[36:40], "data")
	binary.LittleEndian.PutUint32(b[40:44], uint32(dataSize))
	return nil
}

func (e *WavEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *WavEncoder) TotalFrames() uint64 {
	return e.totalFrames
}

func (e *WavEncoder) Format() string { return "wav" }
