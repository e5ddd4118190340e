package service

import "Group_Hub/internal/model"

// 权限判断集中在这里，handler 和 service 不再散落 if 判断。
// 每个动作一个纯函数，入参只依赖已加载的实体。

// CanReviewApplication 只有组长能审批/拒绝申请
func CanReviewApplication(g *model.Group, actorID uint64) bool {
	return g.LeaderID == actorID
}

// CanCancelApplication 只有申请人自己能撤销
func CanCancelApplication(app *model.Application, actorID uint64) bool {
	return app.UserID == actorID
}

// CanManageGroup 只有组长能删除小组
func CanManageGroup(g *model.Group, actorID uint64) bool {
	return g.LeaderID == actorID
}

// CanEditComment 只有作者本人能改评论
func CanEditComment(cm *model.Comment, actorID uint64) bool {
	return cm.AuthorID == actorID
}

// CanDeleteComment 作者或组长可删。只看评论的作者字段和小组的组长字段，
// 不回查当前成员身份，作者退组后仍保留对自己评论的删除权。
func CanDeleteComment(cm *model.Comment, g *model.Group, actorID uint64) bool {
	return cm.AuthorID == actorID || g.LeaderID == actorID
}
