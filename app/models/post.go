package models

import "time"

// Validate checks a stored post against its field rules.
func (p *Post) Validate() error {
	return checkStruct("invalid post", p)
}

// BeforeCreate fills lifecycle fields before first persistence. A
// fresh post always enters the queue as pending.
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = StatusPending
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// Validate checks a submission draft, naming every violated field.
func (d PostDraft) Validate() error {
	return checkStruct("invalid post", d)
}

// NewPost builds a pending post from a validated draft.
func (d PostDraft) NewPost(ownerID int) *Post {
	post := &Post{
		Title:    d.Title,
		Content:  d.Content,
		Category: d.Category,
		Tags:     d.Tags,
		Image:    d.Image,
		UserID:   ownerID,
		Status:   StatusPending,
	}
	post.BeforeCreate()
	return post
}

// Apply copies the patch's present fields onto the post and reports
// whether anything changed. Status and ownership are never touched.
func (p PostPatch) Apply(post *Post) bool {
	changed := false
	if p.Title != nil {
		post.Title = *p.Title
		changed = true
	}
	if p.Content != nil {
		post.Content = *p.Content
		changed = true
	}
	if p.Category != nil {
		post.Category = *p.Category
		changed = true
	}
	if p.Tags != nil {
		post.Tags = *p.Tags
		changed = true
	}
	if p.Image != nil {
		post.Image = *p.Image
		changed = true
	}
	if changed {
		post.UpdatedAt = time.Now().UTC()
	}
	return changed
}
