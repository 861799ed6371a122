package model

import "shareit/shared/model"

const (
	CommentTableName  = "comments"
	CommentEntityName = "comment"

	CommentFieldID       = "id"
	CommentFieldItemID   = "item_id"
	CommentFieldAuthorID = "author_id"
	CommentFieldText     = "text"
)

type Comment struct {
	ID         string `db:"id"`
	ItemID     string `db:"item_id"`
	AuthorID   string `db:"author_id"`
	Text       string `db:"text"`
	AuthorName string `db:"author_name" table:"users" column:"name"`
	model.Metadata
}

func (Comment) GetJoinQuery() string {
	return "JOIN users ON users.id = comments.author_id"
}
