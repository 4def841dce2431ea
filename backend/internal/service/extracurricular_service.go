package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
	"presensia/backend/internal/repository"
	pkgerrors "presensia/backend/pkg/errors"
)

var (
	ErrEkskulNotFound      = errors.New("课外活动不存在")
	ErrEkskulCoachNotFound = errors.New("教练不存在")
	ErrEkskulCoachInvalid  = errors.New("教练必须是在职教师或职工")
	ErrEkskulStudentNotFound = errors.New("学生不存在")
	ErrEkskulNotStudent      = errors.New("只有学生可以加入课外活动")
	ErrEkskulFull            = errors.New("该活动成员已满")
	ErrEkskulAlreadyMember   = errors.New("该学生已加入此活动")
	ErrEkskulOfficerTaken    = errors.New("该职务已有人担任")
	ErrEkskulMemberNotFound  = errors.New("该学生不是此活动的成员")
)

// ExtracurricularService 课外活动服务
type ExtracurricularService interface {
	Create(ctx context.Context, req *dto.CreateExtracurricularRequest) (*dto.ExtracurricularResponse, error)
	Get(ctx context.Context, id string) (*dto.ExtracurricularResponse, []dto.MemberResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.ExtracurricularResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateExtracurricularRequest) (*dto.ExtracurricularResponse, error)
	AddMember(ctx context.Context, ekskulID string, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, ekskulID, studentID string) error
}

type extracurricularService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExtracurricularService 创建课外活动服务
func NewExtracurricularService(repo *repository.Repository, logger *zap.Logger) ExtracurricularService {
	return &extracurricularService{repo: repo, logger: logger}
}

func (s *extracurricularService) Create(ctx context.Context, req *dto.CreateExtracurricularRequest) (*dto.ExtracurricularResponse, error) {
	coach, err := s.resolveCoach(ctx, req.CoachID)
	if err != nil {
		return nil, err
	}

	ekskul := &model.Extracurricular{
		Name:       req.Name,
		CoachID:    req.CoachID,
		Schedule:   req.Schedule,
		Venue:      req.Venue,
		MaxMembers: req.MaxMembers,
		IsActive:   true,
	}
	if ekskul.MaxMembers <= 0 {
		ekskul.MaxMembers = 30
	}

	if err := s.repo.Extracurricular.Create(ctx, ekskul); err != nil {
		return nil, err
	}
	ekskul.Coach = coach

	s.logger.Info("课外活动已创建",
		zap.String("name", req.Name),
		zap.String("coach_id", req.CoachID))

	resp := toExtracurricularResponse(ekskul)
	return &resp, nil
}

func (s *extracurricularService) Get(ctx context.Context, id string) (*dto.ExtracurricularResponse, []dto.MemberResponse, error) {
	ekskul, err := s.repo.Extracurricular.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEkskulNotFound
		}
		return nil, nil, err
	}

	resp := toExtracurricularResponse(ekskul)
	members := make([]dto.MemberResponse, 0, len(ekskul.Members))
	for i := range ekskul.Members {
		members = append(members, toMemberResponse(&ekskul.Members[i]))
	}
	return &resp, members, nil
}

func (s *extracurricularService) List(ctx context.Context, includeInactive bool) ([]dto.ExtracurricularResponse, error) {
	ekskuls, err := s.repo.Extracurricular.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ExtracurricularResponse, 0, len(ekskuls))
	for i := range ekskuls {
		result = append(result, toExtracurricularResponse(&ekskuls[i]))
	}
	return result, nil
}

func (s *extracurricularService) Update(ctx context.Context, id string, req *dto.UpdateExtracurricularRequest) (*dto.ExtracurricularResponse, error) {
	ekskul, err := s.repo.Extracurricular.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEkskulNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		ekskul.Name = *req.Name
	}
	if req.CoachID != nil && *req.CoachID != ekskul.CoachID {
		coach, err := s.resolveCoach(ctx, *req.CoachID)
		if err != nil {
			return nil, err
		}
		ekskul.CoachID = *req.CoachID
		ekskul.Coach = coach
	}
	if req.Schedule != nil {
		ekskul.Schedule = req.Schedule
	}
	if req.Venue != nil {
		ekskul.Venue = req.Venue
	}
	if req.MaxMembers != nil {
		ekskul.MaxMembers = *req.MaxMembers
	}
	if req.IsActive != nil {
		ekskul.IsActive = *req.IsActive
	}

	if err := s.repo.Extracurricular.Update(ctx, ekskul); err != nil {
		return nil, err
	}

	resp := toExtracurricularResponse(ekskul)
	return &resp, nil
}

func (s *extracurricularService) AddMember(ctx context.Context, ekskulID string, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	ekskul, err := s.repo.Extracurricular.GetByID(ctx, ekskulID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEkskulNotFound
		}
		return nil, err
	}

	student, err := s.repo.User.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEkskulStudentNotFound
		}
		return nil, err
	}
	if student.Role != model.RoleSiswa {
		return nil, ErrEkskulNotStudent
	}

	count, err := s.repo.Extracurricular.CountMembers(ctx, ekskulID)
	if err != nil {
		return nil, err
	}
	if count >= int64(ekskul.MaxMembers) {
		return nil, ErrEkskulFull
	}

	role := req.Role
	if role == "" {
		role = model.MemberRoleAnggota
	}
	// KETUA 与 SEKRETARIS 每个活动各至多一名
	if role == model.MemberRoleKetua || role == model.MemberRoleSekretaris {
		taken, err := s.repo.Extracurricular.HasOfficer(ctx, ekskulID, role)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEkskulOfficerTaken
		}
	}

	member := &model.ExtracurricularMember{
		StudentID:         req.StudentID,
		ExtracurricularID: ekskulID,
		Role:              role,
	}
	if err := s.repo.Extracurricular.AddMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, pkgerrors.ErrConflict) {
			return nil, ErrEkskulAlreadyMember
		}
		return nil, err
	}
	member.Student = student

	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *extracurricularService) RemoveMember(ctx context.Context, ekskulID, studentID string) error {
	ekskul, err := s.repo.Extracurricular.GetByID(ctx, ekskulID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEkskulNotFound
		}
		return err
	}

	for i := range ekskul.Members {
		if ekskul.Members[i].StudentID == studentID {
			return s.repo.Extracurricular.RemoveMember(ctx, ekskulID, studentID)
		}
	}
	return ErrEkskulMemberNotFound
}

// resolveCoach 教练必须是在职的教师或职工
func (s *extracurricularService) resolveCoach(ctx context.Context, coachID string) (*model.User, error) {
	coach, err := s.repo.User.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEkskulCoachNotFound
		}
		return nil, err
	}
	if !coach.IsActive || (coach.Role != model.RoleGuru && coach.Role != model.RoleStaff) {
		return nil, ErrEkskulCoachInvalid
	}
	return coach, nil
}

func toExtracurricularResponse(ekskul *model.Extracurricular) dto.ExtracurricularResponse {
	resp := dto.ExtracurricularResponse{
		ID:          ekskul.ExtracurricularID,
		Name:        ekskul.Name,
		CoachID:     ekskul.CoachID,
		Schedule:    ekskul.Schedule,
		Venue:       ekskul.Venue,
		MaxMembers:  ekskul.MaxMembers,
		MemberCount: len(ekskul.Members),
		IsActive:    ekskul.IsActive,
	}
	if ekskul.Coach != nil {
		resp.Coach = toUserBrief(ekskul.Coach)
	}
	return resp
}

func toMemberResponse(member *model.ExtracurricularMember) dto.MemberResponse {
	resp := dto.MemberResponse{
		ID:        member.MemberID,
		StudentID: member.StudentID,
		Role:      member.Role,
	}
	if member.Student != nil {
		resp.Student = toUserBrief(member.Student)
	}
	return resp
}

