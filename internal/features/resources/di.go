package resources

var (
	customFieldDefRepository = &CustomFieldDefRepository{}
	customFieldDefService    = NewCustomFieldDefService(customFieldDefRepository)
	customFieldDefController = NewCustomFieldDefController(customFieldDefService)
)

func GetCustomFieldDefController() *CustomFieldDefController {
	return customFieldDefController
}
