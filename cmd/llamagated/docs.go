package main

// General API documentation for swaggo. Regenerate with `swag init`.
//
// @title           llamagate API
// @version         1.0
// @description     HTTP gateway for single-model chat completions over llama.cpp.
//
// @contact.name   llamagate maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
