package sdk

import "github.com/yaroslav/sdtemplate/models"

// PublishResult is returned by Publish.
//
// The embedded OperationResult carries the display name reported to users;
// Template identifies the published template for follow-up calls such as Tag.
type PublishResult struct {
	models.OperationResult

	// Template references the template the registry stored.
	Template models.TemplateRef `json:"-"`
}
