package smoke

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// A suite file declares cases in YAML:
//
//	base_url: http://localhost:3000
//	cases:
//	  - name: settings_page_accessible
//	    steps:
//	      - route: /settings
//	        expect:
//	          any:
//	            - content_any: [Settings]
//	            - url_suffix: /settings
type suiteFile struct {
	BaseURL string     `yaml:"base_url"`
	Cases   []caseFile `yaml:"cases"`
}

type caseFile struct {
	Name  string     `yaml:"name"`
	Steps []stepFile `yaml:"steps"`
}

type stepFile struct {
	Route  Route        `yaml:"route"`
	Expect *expectation `yaml:"expect"`
}

// expectation must set exactly one field.
type expectation struct {
	SameOrigin bool          `yaml:"same_origin"`
	ExactURL   bool          `yaml:"exact_url"`
	URLSuffix  string        `yaml:"url_suffix"`
	ContentAny []string      `yaml:"content_any"`
	Title      bool          `yaml:"title"`
	Any        []expectation `yaml:"any"`
}

// LoadSuite reads a suite file. baseURL is used when the file does not set base_url.
func LoadSuite(r io.Reader, baseURL string) (*Suite, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var sf suiteFile
	err := decoder.Decode(&sf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("suite file is empty")
		}
		return nil, fmt.Errorf("decode suite file: %w", err)
	}

	if sf.BaseURL != "" {
		baseURL = sf.BaseURL
	}
	baseURL, err = ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	if len(sf.Cases) == 0 {
		return nil, errors.New("suite file has no cases")
	}

	suite := &Suite{BaseURL: baseURL}
	for i, cf := range sf.Cases {
		if cf.Name == "" {
			return nil, fmt.Errorf("case %d: missing name", i)
		}
		if len(cf.Steps) == 0 {
			return nil, fmt.Errorf("case %q: no steps", cf.Name)
		}

		c := Case{Name: cf.Name}
		for j, st := range cf.Steps {
			if st.Route == "" {
				return nil, fmt.Errorf("case %q step %d: missing route", cf.Name, j)
			}
			if st.Expect == nil {
				return nil, fmt.Errorf("case %q step %d: missing expect", cf.Name, j)
			}

			check, err := st.Expect.check(baseURL, st.Route)
			if err != nil {
				return nil, fmt.Errorf("case %q step %d: %w", cf.Name, j, err)
			}
			c.Steps = append(c.Steps, Step{Route: st.Route, Check: check})
		}
		suite.Cases = append(suite.Cases, c)
	}

	return suite, nil
}

func (e *expectation) check(baseURL string, route Route) (Check, error) {
	var checks []Check
	if e.SameOrigin {
		checks = append(checks, SameOrigin(baseURL))
	}
	if e.ExactURL {
		checks = append(checks, URLEquals(route.URL(baseURL)))
	}
	if e.URLSuffix != "" {
		checks = append(checks, URLHasSuffix(e.URLSuffix))
	}
	if len(e.ContentAny) > 0 {
		checks = append(checks, ContentContainsAny(e.ContentAny...))
	}
	if e.Title {
		checks = append(checks, TitlePresent())
	}
	if len(e.Any) > 0 {
		alternatives := make([]Check, len(e.Any))
		for i := range e.Any {
			c, err := e.Any[i].check(baseURL, route)
			if err != nil {
				return Check{}, fmt.Errorf("any[%d]: %w", i, err)
			}
			alternatives[i] = c
		}
		checks = append(checks, AnyOf(alternatives...))
	}

	switch len(checks) {
	case 0:
		return Check{}, errors.New("expect declares no assertion")
	case 1:
		return checks[0], nil
	default:
		return Check{}, fmt.Errorf("expect declares %d assertions, want exactly one", len(checks))
	}
}
