package registrytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yaroslav/sdtemplate/models"
)

type templateKind string

const (
	kindJob      templateKind = "job"
	kindPipeline templateKind = "pipeline"
)

// storedTemplate is one template with its versions (newest first) and tags.
type storedTemplate struct {
	namespace string
	name      string
	versions  []models.TemplateVersion
	tags      map[string]string
}

// Publish stores a template version directly, bypassing the HTTP API.
// namespace may be empty for job templates.
func (s *Server) Publish(kind string, namespace, name, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := templateKind(kind)
	if k != kindPipeline {
		k = kindJob
	}
	s.store(k, namespace, name, version)
}

// TagVersion returns the version a tag points to, and whether the tag exists.
func (s *Server) TagVersion(kind string, namespace, name, tag string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl, ok := s.templates[storeKey(templateKind(kind), namespace, name)]
	if !ok {
		return "", false
	}
	version, ok := tpl.tags[tag]
	return version, ok
}

// store must be called with s.mu held.
func (s *Server) store(kind templateKind, namespace, name, version string) (*storedTemplate, bool) {
	key := storeKey(kind, namespace, name)

	tpl, ok := s.templates[key]
	if !ok {
		tpl = &storedTemplate{namespace: namespace, name: name, tags: make(map[string]string)}
		s.templates[key] = tpl
	}

	for _, v := range tpl.versions {
		if v.Version == version {
			return tpl, false
		}
	}

	entry := models.TemplateVersion{
		ID:         int64(len(s.templates)*100 + len(tpl.versions) + 1),
		Name:       name,
		Namespace:  namespace,
		Version:    version,
		CreateTime: time.Now().UTC().Format(time.RFC3339),
	}
	tpl.versions = append([]models.TemplateVersion{entry}, tpl.versions...)

	return tpl, true
}

// storeKey identifies a template. Job templates are keyed by their full name,
// which is also how the job API addresses them.
func storeKey(kind templateKind, namespace, name string) string {
	if kind == kindPipeline {
		if namespace == "" {
			namespace = models.DefaultNamespace
		}
		return string(kind) + ":" + namespace + "/" + name
	}
	return string(kind) + ":" + models.DisplayName(namespace, name)
}

// lookupKey builds the store key from the route parameters.
func lookupKey(kind templateKind, c *gin.Context) string {
	if kind == kindPipeline {
		return storeKey(kind, c.Param("namespace"), c.Param("name"))
	}
	return storeKey(kind, "", c.Param("name"))
}

func (s *Server) handleValidate(kind templateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, ok := decodeTemplate(c)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"errors":   validateDocument(kind, doc),
			"template": doc,
		})
	}
}

func (s *Server) handlePublish(kind templateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, ok := decodeTemplate(c)
		if !ok {
			return
		}

		if errs := validateDocument(kind, doc); len(errs) > 0 {
			respondError(c, http.StatusBadRequest, errs[0].Message)
			return
		}

		name := fmt.Sprint(doc["name"])
		version := fmt.Sprint(doc["version"])
		namespace, _ := doc["namespace"].(string)

		// Job template names may carry their namespace ("ns/name")
		if kind == kindJob && namespace == "" {
			if i := strings.Index(name, "/"); i > 0 {
				namespace, name = name[:i], name[i+1:]
			}
		}
		if namespace == "" {
			namespace = models.DefaultNamespace
		}

		s.mu.Lock()
		_, created := s.store(kind, namespace, name, version)
		s.mu.Unlock()

		if !created {
			respondError(c, http.StatusConflict, fmt.Sprintf("Template %s@%s already exists", name, version))
			return
		}

		c.JSON(http.StatusCreated, models.PublishedTemplate{
			Name:      name,
			Namespace: namespace,
			Version:   version,
		})
	}
}

func (s *Server) handleListVersions(kind templateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		tpl, ok := s.templates[lookupKey(kind, c)]
		if !ok || len(tpl.versions) == 0 {
			respondError(c, http.StatusNotFound, "Template does not exist")
			return
		}

		c.JSON(http.StatusOK, tpl.versions)
	}
}

func (s *Server) handleResolveTag(kind templateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		tpl, ok := s.templates[lookupKey(kind, c)]
		if !ok {
			respondError(c, http.StatusNotFound, "Template does not exist")
			return
		}

		ref := c.Param("tag")
		version, tagged := tpl.tags[ref]
		if !tagged {
			version = ref
		}

		for _, v := range tpl.versions {
			if v.Version == version {
				c.JSON(http.StatusOK, v)
				return
			}
		}

		respondError(c, http.StatusNotFound, fmt.Sprintf("Template %s does not exist", ref))
	}
}

func (s *Server) handleTag(kind templateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload models.TagPayload
		if err := c.ShouldBindJSON(&payload); err != nil || payload.Version == "" {
			respondError(c, http.StatusBadRequest, "Invalid request payload input")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		tpl, ok := s.templates[lookupKey(kind, c)]
		if !ok || !tpl.hasVersion(payload.Version) {
			respondError(c, http.StatusNotFound, "Template does not exist")
			return
		}

		tag := c.Param("tag")
		_, existed := tpl.tags[tag]
		tpl.tags[tag] = payload.Version

		status := http.StatusCreated
		if existed {
			status = http.StatusOK
		}

		c.JSON(status, gin.H{
			"name":      tpl.name,
			"namespace": tpl.namespace,
			"tag":       tag,
			"version":   payload.Version,
		})
	}
}

func (s *Server) handleRemoveTag(kind templateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		tpl, ok := s.templates[lookupKey(kind, c)]
		tag := c.Param("tag")
		if !ok {
			respondError(c, http.StatusNotFound, "Template does not exist")
			return
		}
		if _, tagged := tpl.tags[tag]; !tagged {
			respondError(c, http.StatusNotFound, fmt.Sprintf("Tag %s does not exist", tag))
			return
		}

		delete(tpl.tags, tag)
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) handleRemoveTemplate(kind templateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		key := lookupKey(kind, c)
		if _, ok := s.templates[key]; !ok {
			respondError(c, http.StatusNotFound, "Template does not exist")
			return
		}

		delete(s.templates, key)
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) handleRemoveVersion(kind templateKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		tpl, ok := s.templates[lookupKey(kind, c)]
		version := c.Param("version")
		if !ok || !tpl.hasVersion(version) {
			respondError(c, http.StatusNotFound, "Template version does not exist")
			return
		}

		kept := tpl.versions[:0]
		for _, v := range tpl.versions {
			if v.Version != version {
				kept = append(kept, v)
			}
		}
		tpl.versions = kept

		for tag, v := range tpl.tags {
			if v == version {
				delete(tpl.tags, tag)
			}
		}

		c.Status(http.StatusNoContent)
	}
}

func (t *storedTemplate) hasVersion(version string) bool {
	for _, v := range t.versions {
		if v.Version == version {
			return true
		}
	}
	return false
}

// decodeTemplate reads the {"yaml": "<json document>"} request body.
func decodeTemplate(c *gin.Context) (map[string]any, bool) {
	var payload models.TemplatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload input")
		return nil, false
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(payload.YAML), &doc); err != nil {
		respondError(c, http.StatusBadRequest, "Template is not valid JSON")
		return nil, false
	}

	return doc, true
}

// validateDocument applies the small subset of the registry schema the fake enforces.
func validateDocument(kind templateKind, doc map[string]any) []models.FieldError {
	errs := make([]models.FieldError, 0)

	for _, field := range []string{"name", "version", "description", "maintainer"} {
		if v, ok := doc[field]; !ok || v == nil || v == "" {
			errs = append(errs, requiredError(field))
		}
	}

	if kind == kindPipeline {
		if _, ok := doc["namespace"]; !ok {
			errs = append(errs, requiredError("namespace"))
		}
		if _, ok := doc["config"].(map[string]any); !ok {
			errs = append(errs, requiredError("config"))
		}
		return errs
	}

	config, ok := doc["config"].(map[string]any)
	if !ok {
		return append(errs, requiredError("config"))
	}
	if _, ok := config["steps"]; !ok {
		errs = append(errs, requiredError("config.steps"))
	}

	return errs
}

func requiredError(path string) models.FieldError {
	key := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		key = path[i+1:]
	}

	return models.FieldError{
		Message: fmt.Sprintf("%q is required", key),
		Path:    path,
		Type:    "any.required",
		Context: map[string]any{"label": key, "key": key},
	}
}

// respondError sends the registry's standard error envelope.
func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.ErrorResponse{
		StatusCode: statusCode,
		Error:      http.StatusText(statusCode),
		Message:    message,
	})
}
