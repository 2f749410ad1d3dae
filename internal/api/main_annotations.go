// @title           cuecard API
// @version         1.0
// @description     Generates process-cue cards for athletes from a short description of a pressure situation.
// @BasePath        /api/v1
package api
