package sdk

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaroslav/sdtemplate/models"
)

func TestRoutes(t *testing.T) {
	job := models.TemplateRef{Kind: models.KindJob, Name: "template/test"}
	namespacedJob := models.TemplateRef{Kind: models.KindJob, Namespace: "nodejs", Name: "lint"}
	pipeline := models.TemplateRef{Kind: models.KindPipeline, Namespace: "ci", Name: "node app"}
	defaultPipeline := models.TemplateRef{Kind: models.KindPipeline, Name: "build"}

	jobRoutes, err := routesFor(models.KindJob)
	require.NoError(t, err)
	pipelineRoutes, err := routesFor(models.KindPipeline)
	require.NoError(t, err)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"job validate", jobRoutes.validatePath, "validator/template"},
		{"job publish", jobRoutes.publishPath, "templates"},
		{"job template", jobRoutes.template(job), "templates/template%2Ftest"},
		{"job versions", jobRoutes.versions(job), "templates/template%2Ftest"},
		{"job version", jobRoutes.version(job, "1.0.0"), "templates/template%2Ftest/versions/1.0.0"},
		{"job tag", jobRoutes.tag(job, "stable"), "templates/template%2Ftest/tags/stable"},
		{"job resolve tag", jobRoutes.resolveTag(job, "stable"), "templates/template%2Ftest/stable"},
		{"job namespaced", jobRoutes.template(namespacedJob), "templates/nodejs%2Flint"},
		{"pipeline validate", pipelineRoutes.validatePath, "validator/pipelineTemplate"},
		{"pipeline publish", pipelineRoutes.publishPath, "pipelineTemplates"},
		{"pipeline template", pipelineRoutes.template(pipeline), "pipeline/template/ci/node%20app"},
		{"pipeline versions", pipelineRoutes.versions(pipeline), "pipeline/template/ci/node%20app/versions"},
		{"pipeline version", pipelineRoutes.version(pipeline, "2.0.0"), "pipeline/template/ci/node%20app/versions/2.0.0"},
		{"pipeline tag", pipelineRoutes.tag(pipeline, "latest"), "pipeline/template/ci/node%20app/tags/latest"},
		{"pipeline resolve tag", pipelineRoutes.resolveTag(pipeline, "latest"), "pipeline/template/ci/node%20app/latest"},
		{"pipeline default namespace", pipelineRoutes.template(defaultPipeline), "pipeline/template/default/build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestRoutesFor_UnknownKind(t *testing.T) {
	_, err := routesFor(models.Kind(42))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestEscape_SingleSegment(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		segment := rapid.String().Draw(r, "segment")

		escaped := escape(segment)
		if strings.Contains(escaped, "/") {
			r.Fatalf("escaped segment %q contains a slash", escaped)
		}

		decoded, err := url.PathUnescape(escaped)
		if err != nil {
			r.Fatalf("PathUnescape(%q) error = %v", escaped, err)
		}
		if decoded != segment {
			r.Fatalf("round trip = %q, want %q", decoded, segment)
		}
	})
}
