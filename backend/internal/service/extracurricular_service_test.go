package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"presensia/backend/internal/dto"
	"presensia/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestExtracurricularService() (ExtracurricularService, *testRepos) {
	repos := newTestRepos()
	svc := NewExtracurricularService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func seedStudent(repos *testRepos, id string) {
	nis := "NIS-" + id
	repos.user.users[id] = &model.User{
		UserID: id, Name: "Siswa " + id, Username: "u-" + id,
		Role: model.RoleSiswa, NIS: &nis, IsActive: true,
	}
}

// ════════════════════════════════════════════════════════════
// Create / Update 测试
// ════════════════════════════════════════════════════════════

func TestExtracurricularService_Create_Success(t *testing.T) {
	svc, repos := setupTestExtracurricularService()
	seedTeacher(repos, "c1", "Pak Agus")

	resp, err := svc.Create(context.Background(), &dto.CreateExtracurricularRequest{
		Name: "Futsal", CoachID: "c1", Venue: strPtr("Lapangan A"),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !resp.IsActive {
		t.Error("新建活动应为启用状态")
	}
	if resp.MaxMembers != 30 {
		t.Errorf("缺省 max_members 应为 30，实际=%d", resp.MaxMembers)
	}
}

func TestExtracurricularService_Create_CoachNotFound(t *testing.T) {
	svc, _ := setupTestExtracurricularService()

	_, err := svc.Create(context.Background(), &dto.CreateExtracurricularRequest{
		Name: "Futsal", CoachID: "nonexistent",
	})
	if !errors.Is(err, ErrEkskulCoachNotFound) {
		t.Errorf("期望 ErrEkskulCoachNotFound，实际: %v", err)
	}
}

func TestExtracurricularService_Create_StudentCannotCoach(t *testing.T) {
	svc, repos := setupTestExtracurricularService()
	seedStudent(repos, "s1")

	_, err := svc.Create(context.Background(), &dto.CreateExtracurricularRequest{
		Name: "Futsal", CoachID: "s1",
	})
	if !errors.Is(err, ErrEkskulCoachInvalid) {
		t.Errorf("期望 ErrEkskulCoachInvalid，实际: %v", err)
	}
}

func TestExtracurricularService_Update_ChangeCoach(t *testing.T) {
	svc, repos := setupTestExtracurricularService()
	seedTeacher(repos, "c1", "Pak Agus")
	seedTeacher(repos, "c2", "Bu Rina")

	created, err := svc.Create(context.Background(), &dto.CreateExtracurricularRequest{
		Name: "Futsal", CoachID: "c1",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateExtracurricularRequest{
		CoachID: strPtr("c2"),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.CoachID != "c2" {
		t.Errorf("期望 coach_id=c2，实际=%s", updated.CoachID)
	}
}

func TestExtracurricularService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestExtracurricularService()

	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateExtracurricularRequest{})
	if !errors.Is(err, ErrEkskulNotFound) {
		t.Errorf("期望 ErrEkskulNotFound，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// AddMember / RemoveMember 测试
// ════════════════════════════════════════════════════════════

func setupEkskulWithMembers(t *testing.T, maxMembers int) (ExtracurricularService, *testRepos, string) {
	t.Helper()
	svc, repos := setupTestExtracurricularService()
	seedTeacher(repos, "c1", "Pak Agus")

	created, err := svc.Create(context.Background(), &dto.CreateExtracurricularRequest{
		Name: "Futsal", CoachID: "c1", MaxMembers: maxMembers,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	return svc, repos, created.ID
}

func TestExtracurricularService_AddMember_DefaultRole(t *testing.T) {
	svc, repos, ekskulID := setupEkskulWithMembers(t, 30)
	seedStudent(repos, "s1")

	member, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{StudentID: "s1"})
	if err != nil {
		t.Fatalf("AddMember 应成功: %v", err)
	}
	if member.Role != model.MemberRoleAnggota {
		t.Errorf("缺省角色应为 ANGGOTA，实际=%s", member.Role)
	}
}

func TestExtracurricularService_AddMember_Duplicate(t *testing.T) {
	svc, repos, ekskulID := setupEkskulWithMembers(t, 30)
	seedStudent(repos, "s1")

	if _, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{StudentID: "s1"}); err != nil {
		t.Fatalf("首次 AddMember 应成功: %v", err)
	}
	_, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{StudentID: "s1"})
	if !errors.Is(err, ErrEkskulAlreadyMember) {
		t.Errorf("期望 ErrEkskulAlreadyMember，实际: %v", err)
	}
}

func TestExtracurricularService_AddMember_CapacityFull(t *testing.T) {
	svc, repos, ekskulID := setupEkskulWithMembers(t, 1)
	seedStudent(repos, "s1")
	seedStudent(repos, "s2")

	if _, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{StudentID: "s1"}); err != nil {
		t.Fatalf("首位成员应成功: %v", err)
	}
	_, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{StudentID: "s2"})
	if !errors.Is(err, ErrEkskulFull) {
		t.Errorf("期望 ErrEkskulFull，实际: %v", err)
	}
}

func TestExtracurricularService_AddMember_SingleKetua(t *testing.T) {
	svc, repos, ekskulID := setupEkskulWithMembers(t, 30)
	seedStudent(repos, "s1")
	seedStudent(repos, "s2")

	if _, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{
		StudentID: "s1", Role: model.MemberRoleKetua,
	}); err != nil {
		t.Fatalf("首位 KETUA 应成功: %v", err)
	}
	_, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{
		StudentID: "s2", Role: model.MemberRoleKetua,
	})
	if !errors.Is(err, ErrEkskulOfficerTaken) {
		t.Errorf("期望 ErrEkskulOfficerTaken，实际: %v", err)
	}

	// SEKRETARIS 名额独立
	if _, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{
		StudentID: "s2", Role: model.MemberRoleSekretaris,
	}); err != nil {
		t.Errorf("SEKRETARIS 名额独立，应成功: %v", err)
	}
}

func TestExtracurricularService_AddMember_NonStudent(t *testing.T) {
	svc, repos, ekskulID := setupEkskulWithMembers(t, 30)
	seedTeacher(repos, "t9", "Pak Tono")

	_, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{StudentID: "t9"})
	if !errors.Is(err, ErrEkskulNotStudent) {
		t.Errorf("期望 ErrEkskulNotStudent，实际: %v", err)
	}
}

func TestExtracurricularService_RemoveMember(t *testing.T) {
	svc, repos, ekskulID := setupEkskulWithMembers(t, 30)
	seedStudent(repos, "s1")

	if _, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{
		StudentID: "s1", Role: model.MemberRoleKetua,
	}); err != nil {
		t.Fatalf("AddMember 应成功: %v", err)
	}
	if err := svc.RemoveMember(context.Background(), ekskulID, "s1"); err != nil {
		t.Fatalf("RemoveMember 应成功: %v", err)
	}
	if err := svc.RemoveMember(context.Background(), ekskulID, "s1"); !errors.Is(err, ErrEkskulMemberNotFound) {
		t.Errorf("重复移除期望 ErrEkskulMemberNotFound，实际: %v", err)
	}

	// 退出后 KETUA 名额释放
	seedStudent(repos, "s2")
	if _, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{
		StudentID: "s2", Role: model.MemberRoleKetua,
	}); err != nil {
		t.Errorf("KETUA 名额释放后应可再任命: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// List / Get 测试
// ════════════════════════════════════════════════════════════

func TestExtracurricularService_List_ExcludesInactive(t *testing.T) {
	svc, repos := setupTestExtracurricularService()
	seedTeacher(repos, "c1", "Pak Agus")

	active, err := svc.Create(context.Background(), &dto.CreateExtracurricularRequest{Name: "Futsal", CoachID: "c1"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	disabled, err := svc.Create(context.Background(), &dto.CreateExtracurricularRequest{Name: "Catur", CoachID: "c1"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	inactive := false
	if _, err := svc.Update(context.Background(), disabled.ID, &dto.UpdateExtracurricularRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	result, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 || result[0].ID != active.ID {
		t.Errorf("缺省列表应只含启用活动: %+v", result)
	}

	all, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("包含停用时应有 2 个活动，实际 %d 个", len(all))
	}
}

func TestExtracurricularService_Get_WithMembers(t *testing.T) {
	svc, repos, ekskulID := setupEkskulWithMembers(t, 30)
	seedStudent(repos, "s1")

	if _, err := svc.AddMember(context.Background(), ekskulID, &dto.AddMemberRequest{StudentID: "s1"}); err != nil {
		t.Fatalf("AddMember 应成功: %v", err)
	}

	resp, members, err := svc.Get(context.Background(), ekskulID)
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if resp.MemberCount != 1 {
		t.Errorf("期望 member_count=1，实际=%d", resp.MemberCount)
	}
	if len(members) != 1 || members[0].StudentID != "s1" {
		t.Errorf("成员列表不符: %+v", members)
	}
}

