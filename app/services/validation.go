package services

import "blogstore/app/models"

// validateFields checks every present field against cfg, in the order title,
// content, tag count, tag whitelist. Lengths are byte lengths.
func validateFields(cfg models.Config, title, content *string, tags *[]string) error {
	if title != nil && len(*title) > int(cfg.MaxTitleLen) {
		return models.ErrTitleTooLong
	}
	if content != nil && len(*content) > int(cfg.MaxContentLen) {
		return models.ErrContentTooLong
	}
	if tags != nil {
		if len(*tags) > int(cfg.MaxTagsCount) {
			return models.ErrTooManyTags
		}
		for _, tag := range *tags {
			if !cfg.HasTag(tag) {
				return models.ErrInvalidTags
			}
		}
	}
	return nil
}
