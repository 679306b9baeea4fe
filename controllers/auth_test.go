package controllers

import (
	"testing"

	"github.com/Auguzcht/NextGen-sub001/models"

	"github.com/stretchr/testify/assert"
)

func TestApprovalEmailDue(t *testing.T) {
	assert.True(t, approvalEmailDue(true, models.UserStatusPENDING))
	assert.True(t, approvalEmailDue(true, models.UserStatusREJECTED))
	// Re-approving an already-approved account sends nothing.
	assert.False(t, approvalEmailDue(true, models.UserStatusAPPROVED))
	assert.False(t, approvalEmailDue(false, models.UserStatusPENDING))
}
