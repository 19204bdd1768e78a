package convocations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourseService/internal/domain"
)

func plannedSlot(stepType domain.StepType, start time.Time, addr *domain.Address) *domain.CourseSlot {
	end := start.Add(3 * time.Hour)
	return &domain.CourseSlot{
		StepType:  stepType,
		StartDate: &start,
		EndDate:   &end,
		Address:   addr,
	}
}

func TestGetAddressList(t *testing.T) {
	paris := &domain.Address{FullAddress: "1 rue de Rivoli, 75001 Paris", City: "Paris"}
	lyon := &domain.Address{FullAddress: "10 place Bellecour, 69002 Lyon", City: "Lyon"}
	lille := &domain.Address{FullAddress: "5 rue Faidherbe, 59000 Lille", City: "Lille"}

	day := time.Date(2020, 3, 3, 8, 0, 0, 0, time.UTC)

	t.Run("two distinct addresses are kept as is", func(t *testing.T) {
		slots := []*domain.CourseSlot{
			plannedSlot(domain.StepOnSite, day, paris),
			plannedSlot(domain.StepOnSite, day.AddDate(0, 0, 1), lyon),
			plannedSlot(domain.StepOnSite, day.AddDate(0, 0, 2), paris),
		}

		assert.Equal(t, []string{paris.FullAddress, lyon.FullAddress}, GetAddressList(slots))
	})

	t.Run("more than two addresses collapse to cities", func(t *testing.T) {
		slots := []*domain.CourseSlot{
			plannedSlot(domain.StepOnSite, day, paris),
			plannedSlot(domain.StepOnSite, day.AddDate(0, 0, 1), lyon),
			plannedSlot(domain.StepOnSite, day.AddDate(0, 0, 2), lille),
		}

		assert.Equal(t, []string{"Paris", "Lyon", "Lille"}, GetAddressList(slots))
	})

	t.Run("remote step appends fixed notice", func(t *testing.T) {
		slots := []*domain.CourseSlot{
			plannedSlot(domain.StepOnSite, day, paris),
			plannedSlot(domain.StepRemote, day.AddDate(0, 0, 1), nil),
		}

		assert.Equal(t, []string{paris.FullAddress, remoteNotice}, GetAddressList(slots))
	})

	t.Run("remote only course", func(t *testing.T) {
		slots := []*domain.CourseSlot{
			plannedSlot(domain.StepRemote, day, nil),
		}

		assert.Equal(t, []string{remoteNotice}, GetAddressList(slots))
	})

	t.Run("no slots", func(t *testing.T) {
		assert.Empty(t, GetAddressList(nil))
	})
}

func TestFormatSlotDates(t *testing.T) {
	march3 := time.Date(2020, 3, 3, 8, 0, 0, 0, time.UTC)
	march4 := time.Date(2020, 3, 4, 8, 0, 0, 0, time.UTC)

	t.Run("sorted, formatted, deduplicated", func(t *testing.T) {
		slots := []*domain.CourseSlot{
			plannedSlot(domain.StepOnSite, march4, nil),
			plannedSlot(domain.StepOnSite, march3, nil),
			// Второй слот того же дня (после обеда) не дублирует дату
			plannedSlot(domain.StepOnSite, march3.Add(6*time.Hour), nil),
		}

		assert.Equal(t, []string{"03/03/2020", "04/03/2020"}, FormatSlotDates(slots))
	})

	t.Run("unplanned slots are skipped", func(t *testing.T) {
		slots := []*domain.CourseSlot{
			{StepType: domain.StepOnSite},
			plannedSlot(domain.StepOnSite, march3, nil),
			{StepType: domain.StepRemote},
		}

		assert.Equal(t, []string{"03/03/2020"}, FormatSlotDates(slots))
	})

	t.Run("no planned slots", func(t *testing.T) {
		assert.Empty(t, FormatSlotDates([]*domain.CourseSlot{{}}))
	})
}
