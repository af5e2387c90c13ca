package sdk

import (
	"fmt"
	"net/url"

	"github.com/yaroslav/sdtemplate/models"
)

// routeSet builds API paths for one template kind. Operations are written
// once against routeSet; only the root of each template's path family and
// the two collection endpoints differ between kinds.
type routeSet struct {
	// validatePath is the validator endpoint.
	validatePath string

	// publishPath is the collection a template is published to.
	publishPath string

	// root returns the escaped path of a single template.
	root func(ref models.TemplateRef) string

	// versionList is appended to root to list a template's versions, newest first.
	versionList string
}

var routeSets = map[models.Kind]routeSet{
	models.KindJob: {
		validatePath: "validator/template",
		publishPath:  "templates",
		root: func(ref models.TemplateRef) string {
			return "templates/" + escape(ref.FullName())
		},
	},
	models.KindPipeline: {
		validatePath: "validator/pipelineTemplate",
		publishPath:  "pipelineTemplates",
		root: func(ref models.TemplateRef) string {
			return "pipeline/template/" + escape(ref.NamespaceOrDefault()) + "/" + escape(ref.Name)
		},
		versionList: "/versions",
	},
}

// routesFor returns the route set for kind.
func routesFor(kind models.Kind) (routeSet, error) {
	routes, ok := routeSets[kind]
	if !ok {
		return routeSet{}, fmt.Errorf("%w: unknown template kind %s", ErrInvalidArgument, kind)
	}
	return routes, nil
}

func (r routeSet) template(ref models.TemplateRef) string {
	return r.root(ref)
}

func (r routeSet) versions(ref models.TemplateRef) string {
	return r.root(ref) + r.versionList
}

func (r routeSet) version(ref models.TemplateRef, version string) string {
	return r.root(ref) + "/versions/" + escape(version)
}

func (r routeSet) tag(ref models.TemplateRef, tag string) string {
	return r.root(ref) + "/tags/" + escape(tag)
}

func (r routeSet) resolveTag(ref models.TemplateRef, tag string) string {
	return r.root(ref) + "/" + escape(tag)
}

// escape percent-encodes a single path segment; "/" becomes %2F.
func escape(segment string) string {
	return url.PathEscape(segment)
}
