package discover

import "strings"

// builtinBaseTypes maps a component name, without its leading "c", to its
// base type. The tool does not report inheritance, so the table is
// maintained by hand.
var builtinBaseTypes = map[string]string{
	"openslesSource":         "cDataSource",
	"juliusSink":             "cDataSink",
	"libsvmliveSink":         "cDataSink",
	"svmSink":                "cDataSink",
	"dataSelector":           "cDataProcessor",
	"nullSink":               "cDataSink",
	"vectorProcessor":        "cDataProcessor",
	"vectorTransform":        "cVectorProcessor",
	"vecToWinProcessor":      "cDataProcessor",
	"windowProcessor":        "cDataProcessor",
	"winToVecProcessor":      "cDataProcessor",
	"dbA":                    "cVectorProcessor",
	"signalGenerator":        "cDataSource",
	"smileResample":          "cDataProcessor",
	"specResample":           "cVectorProcessor",
	"specScale":              "cVectorProcessor",
	"vadV1":                  "cDataProcessor",
	"acf":                    "cVectorProcessor",
	"amdf":                   "cVectorProcessor",
	"contourSmoother":        "cWindowProcessor",
	"deltaRegression":        "cWindowProcessor",
	"fftmagphase":            "cVectorProcessor",
	"framer":                 "cWinToVecProcessor",
	"fullinputMean":          "cDataProcessor",
	"fullturnMean":           "cDataProcessor",
	"monoMixdown":            "cDataProcessor",
	"preemphasis":            "cWindowProcessor",
	"transformFft":           "cVectorProcessor",
	"transformFftr":          "cVectorProcessor",
	"turnDetector":           "cDataProcessor",
	"vectorMVN":              "cVectorTransform",
	"vectorPreemphasis":      "cVectorProcessor",
	"windower":               "cVectorProcessor",
	"exampleProcessor":       "cDataProcessor",
	"exampleSink":            "cDataSink",
	"exampleSource":          "cDataSource",
	"exampleVectorProcessor": "cVectorProcessor",
	"exampleWindowProcessor": "cWindowProcessor",
	"pitchBaseExample":       "cPitchBase",
	"simpleMessageSender":    "cDataSink",
	"functionals":            "cWinToVecProcessor",
	"libsvmSink":             "cDataSink",
	"arffSink":               "cDataSink",
	"arffSource":             "cDataSource",
	"csvSink":                "cDataSink",
	"csvSource":              "cDataSource",
	"datadumpSink":           "cDataSink",
	"htkSink":                "cDataSink",
	"htkSource":              "cDataSource",
	"waveSink":               "cDataSink",
	"waveSinkCut":            "cDataSink",
	"waveSource":             "cDataSource",
	"cens":                   "cVectorProcessor",
	"formantLpc":             "cVectorProcessor",
	"formantSmoother":        "cVectorProcessor",
	"harmonics":              "cVectorProcessor",
	"lpc":                    "cVectorProcessor",
	"lsp":                    "cVectorProcessor",
	"pitchDirection":         "cDataProcessor",
	"pitchJitter":            "cDataProcessor",
	"pitchShs":               "cPitchBase",
	"pitchSmootherViterbi":   "cDataProcessor",
	"tonefilt":               "cDataProcessor",
	"energy":                 "cVectorProcessor",
	"intensity":              "cVectorProcessor",
	"melspec":                "cVectorProcessor",
	"mfcc":                   "cVectorProcessor",
	"mzcr":                   "cVectorProcessor",
	"pitchACF":               "cVectorProcessor",
	"pitchBase":              "cVectorProcessor",
	"pitchSmoother":          "cVectorProcessor",
	"plp":                    "cVectorProcessor",
	"spectral":               "cVectorProcessor",
	"bowProducer":            "cDataSource",
	"maxIndex":               "cVectorProcessor",
	"valbasedSelector":       "cDataProcessor",
	"vectorConcat":           "cVectorProcessor",
	"vectorOperation":        "cVectorProcessor",
	"portaudioDuplex":        "cDataProcessor",
	"portaudioSink":          "cDataSink",
	"portaudioSource":        "cDataSource",
	"portaudioWavplayer":     "cDataSink",
	"rnnProcessor":           "cDataProcessor",
	"rnnSink":                "cDataSink",
	"rnnVad2":                "cDataProcessor",
	"openCVSource":           "cDataSource",
	"tonespec":               "cVectorProcessor",
	"chroma":                 "cVectorProcessor",
}

// BaseTypes resolves the base type of a discovered component.
type BaseTypes struct {
	byLower map[string]string
}

// NewBaseTypes combines the built-in table with overrides keyed by full
// type name, e.g. "cWaveSource". Matching ignores case; overrides win.
func NewBaseTypes(overrides map[string]string) *BaseTypes {
	b := &BaseTypes{byLower: make(map[string]string, len(builtinBaseTypes)+len(overrides))}
	for key, base := range builtinBaseTypes {
		b.byLower[strings.ToLower("c"+key)] = base
	}
	for name, base := range overrides {
		b.byLower[strings.ToLower(name)] = base
	}
	return b
}

// Lookup returns the base type of component.
func (b *BaseTypes) Lookup(component string) (string, bool) {
	base, ok := b.byLower[strings.ToLower(component)]
	return base, ok
}
