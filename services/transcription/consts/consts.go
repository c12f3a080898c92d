package consts

const (
	// Canonical audio handed to the speech backend
	SampleRate     = 16000
	Channels       = 1
	BitDepth       = 16
	PCMCodec       = "pcm_s16le"
	FormatWAV      = "wav"
	WAVExtension   = ".wav"
	WAVMIMEType    = "audio/wav"
	AudioFormField = "audio"

	// Shorter transcripts are returned unpolished
	MinPolishLength = 5
	NoSpeechText    = "No speech detected."
)
