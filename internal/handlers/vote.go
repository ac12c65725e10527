package handlers

import (
	"net/http"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/services"
	"talentradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteInput struct {
	Value int `json:"value" binding:"required,oneof=-1 1"`
}

// VoteComment applies an upvote/downvote to a player comment. Repeating the
// same vote toggles it off; the opposite vote flips it.
func (h *VoteHandler) VoteComment(c *gin.Context) {
	user := MustCurrentUser(c)

	var input voteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	commentID := utils.StringToUint(c.Param("id"))
	vote, err := services.ApplyCommentVote(commentID, user.ID, input.Value)
	if err != nil {
		ServiceError(c, err)
		return
	}

	// Author reputation follows the vote direction; self-votes earn nothing.
	var comment models.Comment
	if db.DB.First(&comment, commentID).Error == nil && comment.UserID != user.ID && vote != nil {
		if vote.Value == models.VoteUp {
			services.AddReputationAsync(comment.UserID, services.RepCommentUpvoted, services.ActionCommentUpvoted)
		} else {
			services.AddReputationAsync(comment.UserID, services.RepCommentDownvoted, services.ActionCommentDownvoted)
			services.AddReputationAsync(user.ID, services.RepDownvoteOther, services.ActionDownvoteOther)
		}
	}

	myVote := 0
	if vote != nil {
		myVote = vote.Value
	}
	c.JSON(http.StatusOK, gin.H{
		"upvotes":   comment.Upvotes,
		"downvotes": comment.Downvotes,
		"my_vote":   myVote,
	})
}

// VoteReply applies an upvote/downvote to a thread reply.
func (h *VoteHandler) VoteReply(c *gin.Context) {
	user := MustCurrentUser(c)

	var input voteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	replyID := utils.StringToUint(c.Param("id"))
	vote, err := services.ApplyReplyVote(replyID, user.ID, input.Value)
	if err != nil {
		ServiceError(c, err)
		return
	}

	var reply models.Reply
	if db.DB.First(&reply, replyID).Error == nil {
		services.GetTrendingService().ScheduleThreadUpdate(reply.ThreadID)
		if reply.UserID != user.ID && vote != nil {
			if vote.Value == models.VoteUp {
				services.AddReputationAsync(reply.UserID, services.RepReplyUpvoted, services.ActionReplyUpvoted)
			} else {
				services.AddReputationAsync(reply.UserID, services.RepReplyDownvoted, services.ActionReplyDownvoted)
				services.AddReputationAsync(user.ID, services.RepDownvoteOther, services.ActionDownvoteOther)
			}
		}
	}

	myVote := 0
	if vote != nil {
		myVote = vote.Value
	}
	c.JSON(http.StatusOK, gin.H{
		"upvotes":   reply.Upvotes,
		"downvotes": reply.Downvotes,
		"my_vote":   myVote,
	})
}
