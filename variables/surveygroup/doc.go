// Package surveygroup compiles grouped definitions made of survey id sets.
//
// A survey may belong to several groups. MembersAt returns all of them, in definition order.
package surveygroup
