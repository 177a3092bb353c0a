package encoder

// Capture and upload format constants. The recognizer expects 16 kHz
// mono s16le input regardless of container.
const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 4096
)

// Encoder packages raw PCM blocks into an upload container.
type Encoder interface {
	// EncodeBlock consumes one block of 16-bit mono samples.
	EncodeBlock(block []int16) error
	// Close finalizes the stream; Bytes is valid afterwards.
	Close() error
	Bytes() []byte
	TotalFrames() uint64
	// Format is the container name used for the upload filename
	// extension ("flac" or "wav").
	Format() string
}

// BytesToSamples reinterprets little-endian s16 PCM bytes as samples.
func BytesToSamples(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(uint16(data[i*2]) | uint16(data[i*2+1])<<8)
	}
	return samples
}

// Encode runs pcm through a fresh encoder from the given constructor and
// returns the finished container bytes plus the format name.
func Encode(newEnc func() (Encoder, error), pcm []byte) ([]byte, string, error) {
	enc, err := newEnc()
	if err != nil {
		return nil, "", err
	}
	samples := BytesToSamples(pcm)
	for off := 0; off < len(samples); off += BlockSize {
		end := min(off+BlockSize, len(samples))
		if err := enc.EncodeBlock(samples[off:end]); err != nil {
			return nil, "", err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, "", err
	}
	return enc.Bytes(), enc.Format(), nil
}
