package model

// Membership 是派生出来的成员身份，不落库。
// 组长和已通过申请的用户属于小组成员，其余一律是非成员。
type Membership int8

const (
	NonMember Membership = iota
	ApprovedMember
	Leader
)

func (m Membership) String() string {
	switch m {
	case Leader:
		return "leader"
	case ApprovedMember:
		return "approved_member"
	default:
		return "non_member"
	}
}

// IsMember 非成员不许发言
func (m Membership) IsMember() bool {
	return m != NonMember
}
