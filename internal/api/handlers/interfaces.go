package handlers

import "github.com/gin-gonic/gin"

// JobPostingHandlerInterface defines the methods needed by the job posting routes.
type JobPostingHandlerInterface interface {
	CreateJobPosting(c *gin.Context)
	GetJobPosting(c *gin.Context)
	DeleteJobPosting(c *gin.Context)
}

// FormHandlerInterface defines the methods needed by the form routes.
type FormHandlerInterface interface {
	GetForm(c *gin.Context)
	ReplaceForm(c *gin.Context)
	SubmitApplication(c *gin.Context)
	OpenDraft(c *gin.Context)
}

// DraftHandlerInterface defines the methods needed by the draft routes.
type DraftHandlerInterface interface {
	GetDraft(c *gin.Context)
	AddField(c *gin.Context)
	UpdateField(c *gin.Context)
	RemoveField(c *gin.Context)
	MoveField(c *gin.Context)
	ReorderFields(c *gin.Context)
	AddOption(c *gin.Context)
	UpdateOption(c *gin.Context)
	RemoveOption(c *gin.Context)
	SuggestFields(c *gin.Context)
	SaveDraft(c *gin.Context)
	DiscardDraft(c *gin.Context)
}

// Ensure handlers implements the interface (compile-time check)
var _ JobPostingHandlerInterface = (*JobPostingHandler)(nil)
var _ FormHandlerInterface = (*FormHandler)(nil)
var _ DraftHandlerInterface = (*DraftHandler)(nil)
