package prompt

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// CourseParams fills the course template.
type CourseParams struct {
	Topic         string
	SearchContext string
}

// QuizParams fills the quiz template.
type QuizParams struct {
	CourseContext string
	QuestionCount int
}

// Store resolves prompt templates, preferring overrides loaded from disk
// over the compiled-in defaults.
type Store struct {
	course *template.Template
	quiz   *template.Template
}

// templateFile is the YAML shape of an override file.
type templateFile struct {
	ID       string `yaml:"id"`
	Template string `yaml:"template"`
}

// NewStore creates a prompt store. When dir is non-empty, *.yaml files in it
// are walked and files with a recognized id override the default template of
// that id. Invalid files are skipped with a warning.
func NewStore(dir string) (*Store, error) {
	s := &Store{}

	overrides := map[string]string{}
	if dir != "" {
		if err := loadOverrides(dir, overrides); err != nil {
			return nil, fmt.Errorf("loading prompt overrides: %w", err)
		}
	}

	var err error
	s.course, err = parseTemplate(courseTemplateID, overrides, defaultCourseTemplate)
	if err != nil {
		return nil, err
	}
	s.quiz, err = parseTemplate(quizTemplateID, overrides, defaultQuizTemplate)
	if err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		slog.Info("prompt overrides loaded", "count", len(overrides))
	}
	return s, nil
}

func parseTemplate(id string, overrides map[string]string, fallback string) (*template.Template, error) {
	text, ok := overrides[id]
	if !ok {
		text = fallback
	}
	t, err := template.New(id).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", id, err)
	}
	return t, nil
}

func loadOverrides(dir string, overrides map[string]string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var tf templateFile
		if err := yaml.Unmarshal(data, &tf); err != nil {
			slog.Warn("skipping invalid prompt template YAML", "path", path, "error", err)
			return nil
		}
		if tf.ID != courseTemplateID && tf.ID != quizTemplateID {
			return nil // Not a template file
		}
		overrides[tf.ID] = tf.Template
		return nil
	})
}

// SystemPrompt returns the role message for generation requests.
func (s *Store) SystemPrompt() string {
	return systemPrompt
}

// Course renders the course prompt.
func (s *Store) Course(p CourseParams) (string, error) {
	return render(s.course, p)
}

// Quiz renders the quiz prompt.
func (s *Store) Quiz(p QuizParams) (string, error) {
	return render(s.quiz, p)
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", t.Name(), err)
	}
	return b.String(), nil
}
