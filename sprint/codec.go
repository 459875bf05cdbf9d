package sprint

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// JSON shape of a sprint result as returned by the engine.
// Durations are float seconds. A missing "duration" marks a legacy result.
type envelope struct {
	Result *resultJSON `json:"result"`
}

type resultJSON struct {
	Region   string     `json:"region"`
	Duration *float64   `json:"duration,omitempty"`
	Steps    []stepJSON `json:"steps"`
}

type stepJSON struct {
	Connect  float64     `json:"connect"`
	Duration float64     `json:"duration"`
	Request  Transaction `json:"request"`
	Response Transaction `json:"response"`
}

// Decode reads a sprint result envelope from r.
func Decode(r io.Reader) (*Result, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, errors.Wrap(err, "decoding sprint result")
	}
	if env.Result == nil {
		return nil, errors.New("sprint result is missing the 'result' object")
	}

	result := &Result{
		Region: env.Result.Region,
		Schema: SchemaLegacy,
		Steps:  make([]Step, 0, len(env.Result.Steps)),
	}
	if env.Result.Duration != nil {
		d, err := ParseSeconds(*env.Result.Duration)
		if err != nil {
			return nil, errors.Wrap(err, "sprint")
		}
		result.Schema = SchemaTimed
		result.Duration = d
	}
	for i, s := range env.Result.Steps {
		connect, err := ParseSeconds(s.Connect)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d connect", i+1)
		}
		duration, err := ParseSeconds(s.Duration)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i+1)
		}
		result.Steps = append(result.Steps, Step{
			Connect:  connect,
			Duration: duration,
			Request:  s.Request,
			Response: s.Response,
		})
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// Encode writes result to w in the shape Decode reads.
func Encode(w io.Writer, result *Result) error {
	res := resultJSON{
		Region: result.Region,
		Steps:  make([]stepJSON, 0, len(result.Steps)),
	}
	if d, ok := result.TotalDuration(); ok {
		seconds := d.Seconds()
		res.Duration = &seconds
	}
	for _, s := range result.Steps {
		res.Steps = append(res.Steps, stepJSON{
			Connect:  s.Connect.Seconds(),
			Duration: s.Duration.Seconds(),
			Request:  s.Request,
			Response: s.Response,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(envelope{Result: &res}); err != nil {
		return errors.Wrap(err, "encoding sprint result")
	}
	return nil
}
