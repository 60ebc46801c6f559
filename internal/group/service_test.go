package group

import (
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGroupService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Group Service Suite")
}

type mockGroupRepository struct {
	groups map[int64]*Group
	nextID int64
}

func newMockGroupRepository() *mockGroupRepository {
	return &mockGroupRepository{groups: map[int64]*Group{}, nextID: 1}
}

func (m *mockGroupRepository) Create(g *Group) error {
	g.ID = m.nextID
	m.nextID++
	copied := *g
	m.groups[g.ID] = &copied
	return nil
}

func (m *mockGroupRepository) GetByID(id int64) (*Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	copied := *g
	return &copied, nil
}

func (m *mockGroupRepository) GetByName(name string) (*Group, error) {
	for _, g := range m.groups {
		if g.Name == name {
			copied := *g
			return &copied, nil
		}
	}
	return nil, ErrGroupNotFound
}

func (m *mockGroupRepository) GetAll(includeInactive bool) ([]*Group, error) {
	var out []*Group
	for id := int64(1); id < m.nextID; id++ {
		g, ok := m.groups[id]
		if !ok {
			continue
		}
		if !includeInactive && !g.IsActive {
			continue
		}
		copied := *g
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockGroupRepository) Update(g *Group) error {
	if _, ok := m.groups[g.ID]; !ok {
		return ErrGroupNotFound
	}
	copied := *g
	m.groups[g.ID] = &copied
	return nil
}

var _ = Describe("GroupService", func() {
	var (
		service  *Service
		mockRepo *mockGroupRepository
	)

	BeforeEach(func() {
		mockRepo = newMockGroupRepository()
		service = NewService(mockRepo, slog.Default())
	})

	Describe("Create", func() {
		It("should create an active group", func() {
			g, err := service.Create(CreateGroupDTO{Name: "Engineering", Color: "#3b82f6"})

			Expect(err).NotTo(HaveOccurred())
			Expect(g.ID).To(BeNumerically(">", 0))
			Expect(g.IsActive).To(BeTrue())
		})

		It("should reject a duplicate name", func() {
			_, err := service.Create(CreateGroupDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(CreateGroupDTO{Name: "Engineering"})
			Expect(err).To(Equal(ErrGroupNameTaken))
		})

		It("should reject an empty name", func() {
			_, err := service.Create(CreateGroupDTO{Name: ""})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should keep the own name without a conflict", func() {
			g, err := service.Create(CreateGroupDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(g.ID, UpdateGroupDTO{Name: "Engineering", Color: "#f59e0b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Color).To(Equal("#f59e0b"))
		})

		It("should reject renaming onto another group", func() {
			_, err := service.Create(CreateGroupDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())
			other, err := service.Create(CreateGroupDTO{Name: "Operations"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(other.ID, UpdateGroupDTO{Name: "Engineering"})
			Expect(err).To(Equal(ErrGroupNameTaken))
		})

		It("should return not found for an unknown group", func() {
			_, err := service.Update(999, UpdateGroupDTO{Name: "Ghost"})
			Expect(err).To(Equal(ErrGroupNotFound))
		})
	})

	Describe("Deactivate", func() {
		It("should hide the group from the default listing", func() {
			g, err := service.Create(CreateGroupDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Deactivate(g.ID)).To(Succeed())

			visible, err := service.List(false)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible).To(BeEmpty())

			all, err := service.List(true)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
			Expect(all[0].IsActive).To(BeFalse())
		})
	})
})
