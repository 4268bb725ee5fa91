package synth

import "github.com/gogpu/texconv"

// Output names.
const (
	OutputColor    = "color"
	OutputMRAO     = "mrao"
	OutputNormal   = "normal"
	OutputDiffuse  = "diffuse"
	OutputExponent = "exponent"
	OutputEmissive = "emissive"
)

// outputOrder lists the outputs of each mode in the order they are built.
var outputOrder = map[Mode][]string{
	ModePBR:   {OutputColor, OutputMRAO, OutputNormal, OutputEmissive},
	ModePhong: {OutputExponent, OutputDiffuse, OutputNormal, OutputEmissive},
}

// suffixes maps output names to file name suffixes per mode.
var suffixes = map[Mode]map[string]string{
	ModePBR: {
		OutputColor:    "_color",
		OutputMRAO:     "_mrao",
		OutputNormal:   "_normal",
		OutputEmissive: "_emissive",
	},
	ModePhong: {
		OutputDiffuse:  "_d",
		OutputNormal:   "_n",
		OutputExponent: "_e",
		OutputEmissive: "_em",
	},
}

// Suffix returns the file name suffix of an output, for example "_mrao" or
// "_e", or "" for a name the mode does not produce.
func Suffix(mode Mode, output string) string {
	return suffixes[mode][output]
}

// Result holds the outputs of one conversion.
type Result struct {
	Item    *Item
	Mode    Mode
	outputs map[string]*texconv.Buffer
}

func newResult(item *Item, mode Mode) *Result {
	return &Result{Item: item, Mode: mode, outputs: make(map[string]*texconv.Buffer, 4)}
}

func (r *Result) set(name string, b *texconv.Buffer) { r.outputs[name] = b }

// Get returns the named output, or nil.
func (r *Result) Get(name string) *texconv.Buffer { return r.outputs[name] }

// Names returns the names of the produced outputs in a stable order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.outputs))
	for _, name := range outputOrder[r.Mode] {
		if _, ok := r.outputs[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Len returns the number of outputs.
func (r *Result) Len() int { return len(r.outputs) }
