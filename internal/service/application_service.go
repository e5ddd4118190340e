package service

import (
	"context"
	"log"
	"time"

	"Group_Hub/internal/model"
	"Group_Hub/internal/pkg"
	"Group_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

// ApplicationService 入组申请的全生命周期：申请、撤销、审批、拒绝。
// 审批的容量校验靠每组一把互斥锁 + 事务内实时 count，绝不超卖。
type ApplicationService struct {
	repo      *mysql.ApplicationRepository
	groupRepo *mysql.GroupRepository
	locks     *pkg.KeyMutex
}

type Sender func(ctx context.Context, ob *model.ApplicationOutbox) error

// OutboxRelayer 定时把申请生命周期事件从 outbox 表投递出去
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

// GroupCountReconciler 小组通过人数的冗余计数对账
type GroupCountReconciler struct {
	repo      *mysql.GroupCountReconcilerRepo
	batchSize int
	interval  time.Duration
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{
		repo:      &mysql.ApplicationRepository{DB: db},
		groupRepo: &mysql.GroupRepository{DB: db},
		locks:     pkg.NewKeyMutex(),
	}
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func NewGroupCountReconciler(db *gorm.DB) *GroupCountReconciler {
	return &GroupCountReconciler{
		repo:      &mysql.GroupCountReconcilerRepo{DB: db},
		batchSize: 500,
		interval:  5 * time.Minute,
	}
}

// Apply 提交入组申请，创建 pending 记录。
// 组长不能申请自己的小组；(user, group) 已有申请时不允许再次申请，
// 不论旧申请处于什么状态，先撤销才能重新申请。
func (s *ApplicationService) Apply(ctx context.Context, userID, groupID uint64) (*model.Application, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.LeaderID == userID {
		return nil, pkg.ErrSelfApplication
	}

	// 先查一次给出友好错误，并发窗口由唯一键兜底
	exists, err := s.repo.Exists(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkg.ErrDuplicateApplication
	}

	app := &model.Application{
		GroupID: groupID,
		UserID:  userID,
		Status:  model.ApplicationPending,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Cancel 撤销自己的申请，整行删除，不看状态。
// 已通过的申请被撤销时名额立即释放（删除和计数回退在同一事务）。
func (s *ApplicationService) Cancel(ctx context.Context, requesterID, applicationID uint64) error {
	app, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if !CanCancelApplication(app, requesterID) {
		return pkg.ErrNotOwner
	}

	// 撤销已通过的申请会动名额，和审批串行
	unlock := s.locks.Lock(app.GroupID)
	defer unlock()

	return s.repo.Delete(ctx, app)
}

// Approve 组长审批通过。容量校验和状态写入在小组锁内的同一个事务里完成：
// N 个并发审批抢 K 个剩余名额时恰好 K 个成功，其余拿到 ErrCapacityExceeded。
// 失败不改任何状态，也不在这里重试。
func (s *ApplicationService) Approve(ctx context.Context, reviewerID, applicationID uint64) error {
	app, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}
	group, err := s.groupRepo.FindByID(ctx, app.GroupID)
	if err != nil {
		return err
	}
	if !CanReviewApplication(group, reviewerID) {
		return pkg.ErrNotLeader
	}

	unlock := s.locks.Lock(group.ID)
	defer unlock()

	return s.repo.Approve(ctx, applicationID, group.Capacity)
}

// Reject 组长拒绝，pending -> rejected，不涉及容量
func (s *ApplicationService) Reject(ctx context.Context, reviewerID, applicationID uint64) error {
	app, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}
	group, err := s.groupRepo.FindByID(ctx, app.GroupID)
	if err != nil {
		return err
	}
	if !CanReviewApplication(group, reviewerID) {
		return pkg.ErrNotLeader
	}
	return s.repo.Reject(ctx, applicationID)
}

// ListByGroup 组长查看小组的申请列表
func (s *ApplicationService) ListByGroup(ctx context.Context, reviewerID, groupID uint64, status int8, page, size int) ([]model.Application, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !CanReviewApplication(group, reviewerID) {
		return nil, pkg.ErrNotLeader
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.ListByGroup(ctx, groupID, status, (page-1)*size, size)
}

// Run 投递器启动入口
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// drainOnce 批量取出待投递事件逐条发送，失败记重试
func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 用小组 id 做分区键，同组事件保序
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ApplicationOutbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.GroupID), []byte(ob.Payload))
	}
}

// LogSender 默认 sender，kafka 未配置时先打印
func LogSender(ctx context.Context, ob *model.ApplicationOutbox) error {
	log.Printf("OUTBOX SEND type=%s user=%d group=%d payload=%s", ob.EventType, ob.UserID, ob.GroupID, ob.Payload)
	return nil
}

// Run 对账定时任务启动入口
func (r *GroupCountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	var lastID uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			lastID = r.reconcileOnce(ctx, lastID)
		}
	}
}

// reconcileOnce 校准一批小组的冗余计数，扫完一轮后从头开始
func (r *GroupCountReconciler) reconcileOnce(ctx context.Context, lastID uint64) uint64 {
	groups, next, err := r.repo.ReconcileList(ctx, r.batchSize, lastID)
	if err != nil {
		log.Printf("reconcile list err: %v", err)
		return lastID
	}
	if len(groups) == 0 {
		return 0
	}
	for _, g := range groups {
		real, err := r.repo.RealApproved(ctx, g.ID)
		if err != nil {
			continue
		}
		if real != g.ApprovedCount {
			_ = r.repo.ReconcileApproved(ctx, g.ID, real)
		}
	}
	return next
}
