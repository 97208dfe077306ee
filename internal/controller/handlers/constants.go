package handlers

// Подсказки по использованию команд с аргументами
const (
	usageAddSlot    = "/addslot <день недели> <HH:MM-HH:MM>"
	usageRemoveSlot = "/removeslot <день недели> <номер слота>"
	usageHire       = "/hire <ID исполнителя> <ID задачи> <YYYY-MM-DD> <HH:MM-HH:MM>..."
	usageExtend     = "/extend <ID заявки> <часов>"
	usageAgenda     = "/agenda [YYYY-MM-DD]"
	usageNewTask    = "/newtask <название>"
)

const dateLayout = "2006-01-02"

const helpText = "📚 Справка по командам:\n\n" +
	"Общие:\n" +
	"/start - Начать работу с ботом\n" +
	"/help - Показать эту справку\n\n" +
	"Для заказчиков:\n" +
	"/newtask <название> - Создать задачу\n" +
	"/mytasks - Мои задачи\n" +
	"/hire <ID исполнителя> <ID задачи> <YYYY-MM-DD> <HH:MM-HH:MM>... - Нанять исполнителя\n\n" +
	"Для исполнителей:\n" +
	"/becomeworker - Стать исполнителем\n" +
	"/availability - Моя доступность по дням недели\n" +
	"/addslot <день> <HH:MM-HH:MM> - Добавить слот доступности\n" +
	"/removeslot <день> <номер> - Удалить слот доступности\n" +
	"/mybookings - Мои заявки\n" +
	"/agenda [YYYY-MM-DD] - Расписание на день\n" +
	"/accept <ID>, /reject <ID> - Ответить на заявку\n" +
	"/complete <ID> - Завершить текущую работу\n" +
	"/extendable <ID> - На сколько часов можно продлить\n" +
	"/extend <ID> <часов> - Продлить работу\n" +
	"/cancel <ID> - Отменить заявку\n\n" +
	"Дни недели: monday, tuesday, wednesday, thursday, friday, saturday, sunday"
